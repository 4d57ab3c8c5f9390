package ssd1322

import (
	"periph.io/x/conn/v3/gpio"
)

// busOp is one recorded transfer or line change on a recordConn.
type busOp struct {
	Kind  string // "command", "data", "reset", "power"
	Cmd   byte
	Args  []byte
	Data  []byte
	Level gpio.Level
}

// recordConn records every driver interaction and can inject failures, so
// facade tests can verify exact bus sequences without hardware.
type recordConn struct {
	ops        []busOp
	commandErr map[byte]error
	dataErr    error
	closed     bool
}

func newRecordConn() *recordConn {
	return &recordConn{commandErr: make(map[byte]error)}
}

func (c *recordConn) String() string { return "record" }

func (c *recordConn) Close() error {
	c.closed = true
	return nil
}

func (c *recordConn) Command(cmd byte, args ...byte) error {
	if err := c.commandErr[cmd]; err != nil {
		return err
	}
	c.ops = append(c.ops, busOp{Kind: "command", Cmd: cmd, Args: append([]byte(nil), args...)})
	return nil
}

func (c *recordConn) Data(data ...byte) error {
	if c.dataErr != nil {
		return c.dataErr
	}
	c.ops = append(c.ops, busOp{Kind: "data", Data: append([]byte(nil), data...)})
	return nil
}

func (c *recordConn) Reset(level gpio.Level) error {
	c.ops = append(c.ops, busOp{Kind: "reset", Level: level})
	return nil
}

func (c *recordConn) Power(level gpio.Level) error {
	c.ops = append(c.ops, busOp{Kind: "power", Level: level})
	return nil
}

// commands filters the recorded operations down to command transfers.
func (c *recordConn) commands() []busOp {
	var out []busOp
	for _, op := range c.ops {
		if op.Kind == "command" {
			out = append(out, op)
		}
	}
	return out
}

var _ Conn = (*recordConn)(nil)
