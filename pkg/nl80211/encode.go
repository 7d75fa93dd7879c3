package nl80211

import (
	"errors"
	"fmt"

	"github.com/mdlayher/netlink"

	"github.com/nlreg/regdbd/pkg/regdb"
)

// ErrEncodingFailed indicates the attribute encoder could not append a
// field. Nothing partial survives: the whole payload is discarded.
var ErrEncodingFailed = errors.New("attribute encoding failed")

// EncodeSetReg builds the SET_REG attribute payload: the country code plus
// one nested attribute group per rule, in rule order, inside a single
// AttrRegRules container. Each group carries the six rule fields as u32
// host-order netlink attributes.
func EncodeSetReg(alpha2 [2]byte, rules []regdb.Rule) ([]byte, error) {
	ae := netlink.NewAttributeEncoder()

	ae.String(AttrRegAlpha2, string(alpha2[:]))
	ae.Nested(AttrRegRules, func(nae *netlink.AttributeEncoder) error {
		for i, r := range rules {
			rule := r
			// Nested attribute types are 1-based list indices; the
			// kernel iterates the container and ignores the type value.
			nae.Nested(uint16(i+1), func(rae *netlink.AttributeEncoder) error {
				rae.Uint32(AttrRegRuleFlags, rule.Flags)
				rae.Uint32(AttrFreqRangeStart, rule.Freq.StartKHz)
				rae.Uint32(AttrFreqRangeEnd, rule.Freq.EndKHz)
				rae.Uint32(AttrFreqRangeMaxBW, rule.Freq.MaxBandwidthKHz)
				rae.Uint32(AttrPowerRuleMaxAntGain, rule.Power.MaxAntennaGain)
				rae.Uint32(AttrPowerRuleMaxEIRP, rule.Power.MaxEIRP)
				return nil
			})
		}
		return nil
	})

	b, err := ae.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}
	return b, nil
}
