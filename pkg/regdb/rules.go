package regdb

import (
	"encoding/binary"
	"fmt"
)

// FreqRange is one rule's frequency constraints, all in kHz.
type FreqRange struct {
	StartKHz        uint32
	EndKHz          uint32
	MaxBandwidthKHz uint32
}

// PowerRule is one rule's power constraints: max antenna gain in mBi and
// max EIRP in mBm.
type PowerRule struct {
	MaxAntennaGain uint32
	MaxEIRP        uint32
}

// Rule is one decoded regulatory rule.
type Rule struct {
	Flags uint32
	Freq  FreqRange
	Power PowerRule
}

// Rules resolves the country's rule collection and returns its rules,
// decoded, in on-disk pointer order.
//
// The collection is resolved in two phases. The count field comes from
// unvalidated memory, so it cannot size anything until its own bounds are
// proven: first resolve just the count, then re-resolve the collection with
// the full derived size (count header plus count offsets) before reading
// the offset array. The size derivation itself is checked for uint32
// overflow, so an absurd count can never wrap to a small span.
func (d *Database) Rules(c Country) ([]Rule, error) {
	head, err := d.resolve(c.CollectionOffset, collectionHeadSize)
	if err != nil {
		return nil, fmt.Errorf("rule collection: %w", err)
	}
	count := binary.BigEndian.Uint32(head)

	if count > (^uint32(0)-collectionHeadSize)/rulePtrSize {
		return nil, fmt.Errorf("rule collection: count %d overflows: %w",
			count, ErrOutOfBounds)
	}
	coll, err := d.resolve(c.CollectionOffset, collectionHeadSize+count*rulePtrSize)
	if err != nil {
		return nil, fmt.Errorf("rule collection: count %d: %w", count, err)
	}

	rules := make([]Rule, 0, count)
	for i := uint32(0); i < count; i++ {
		off := binary.BigEndian.Uint32(coll[collectionHeadSize+i*rulePtrSize:])
		r, err := d.rule(off)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (d *Database) rule(off uint32) (Rule, error) {
	rb, err := d.resolve(off, RuleSize)
	if err != nil {
		return Rule{}, err
	}
	freqOff := binary.BigEndian.Uint32(rb[0:4])
	powerOff := binary.BigEndian.Uint32(rb[4:8])
	flags := binary.BigEndian.Uint32(rb[8:12])

	fb, err := d.resolve(freqOff, FreqRangeSize)
	if err != nil {
		return Rule{}, fmt.Errorf("freq range: %w", err)
	}
	pb, err := d.resolve(powerOff, PowerRuleSize)
	if err != nil {
		return Rule{}, fmt.Errorf("power rule: %w", err)
	}

	return Rule{
		Flags: flags,
		Freq: FreqRange{
			StartKHz:        binary.BigEndian.Uint32(fb[0:4]),
			EndKHz:          binary.BigEndian.Uint32(fb[4:8]),
			MaxBandwidthKHz: binary.BigEndian.Uint32(fb[8:12]),
		},
		Power: PowerRule{
			MaxAntennaGain: binary.BigEndian.Uint32(pb[0:4]),
			MaxEIRP:        binary.BigEndian.Uint32(pb[4:8]),
		},
	}, nil
}
