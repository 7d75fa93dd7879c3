// Package nl80211 encodes regulatory domains as nl80211 generic-netlink
// messages and dispatches them to the kernel.
package nl80211

// FamilyName is the generic-netlink family the kernel registers for
// wireless configuration.
const FamilyName = "nl80211"

// CmdSetReg installs a regulatory domain.
const CmdSetReg = 26

// Top-level message attributes. Values are kernel ABI and must not change.
const (
	AttrRegAlpha2 = 33
	AttrRegRules  = 34
)

// Per-rule attributes nested inside AttrRegRules.
const (
	AttrRegRuleFlags        = 1
	AttrFreqRangeStart      = 2
	AttrFreqRangeEnd        = 3
	AttrFreqRangeMaxBW      = 4
	AttrPowerRuleMaxAntGain = 5
	AttrPowerRuleMaxEIRP    = 6
)
