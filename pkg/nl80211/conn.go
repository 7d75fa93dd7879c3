package nl80211

import (
	"fmt"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
)

// Conn dispatches regulatory messages to the kernel over generic netlink.
type Conn struct {
	c      *genetlink.Conn
	family genetlink.Family
}

// Dial opens a generic-netlink socket and resolves the nl80211 family.
func Dial() (*Conn, error) {
	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, fmt.Errorf("dial generic netlink: %w", err)
	}

	family, err := c.GetFamily(FamilyName)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("resolve %s family: %w", FamilyName, err)
	}

	return &Conn{c: c, family: family}, nil
}

// Close releases the netlink socket.
func (c *Conn) Close() error {
	return c.c.Close()
}

// SetRegulatory sends a SET_REG request carrying the encoded payload and
// waits for the kernel's acknowledgment.
func (c *Conn) SetRegulatory(payload []byte) error {
	msg := genetlink.Message{
		Header: genetlink.Header{Command: CmdSetReg},
		Data:   payload,
	}

	if _, err := c.c.Execute(msg, c.family.ID, netlink.Request|netlink.Acknowledge); err != nil {
		return fmt.Errorf("set regulatory domain: %w", err)
	}
	return nil
}
