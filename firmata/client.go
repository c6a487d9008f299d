// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// Opts holds the configuration of a Client.
type Opts struct {
	// Logger receives parser diagnostics. Defaults to a logger that discards
	// everything.
	Logger logrus.FieldLogger
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{}

// Client is the protocol engine of one board: it decodes the bytes fed to it
// into Device State and events, and encodes commands into its ByteSink.
//
// Feed must be called serially. All methods are safe to call concurrently
// with each other; they share a single lock so the encoder sees a
// consistent cache.
type Client struct {
	mu   sync.Mutex
	sink ByteSink
	log  logrus.FieldLogger
	st   *state
	p    parser
}

// NewClient returns a Client writing to sink. opts may be nil.
func NewClient(sink ByteSink, opts *Opts) *Client {
	if opts == nil {
		opts = &DefaultOpts
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	c := &Client{sink: sink, log: log, st: newState()}
	c.p.log = log
	return c
}

func (c *Client) String() string {
	if s, ok := c.sink.(fmt.Stringer); ok {
		return "firmata(" + s.String() + ")"
	}
	return "firmata"
}

// Feed consumes one received byte.
//
// It returns the event of the message the byte completes, or nil. Errors are
// ErrSysExOverflow and ErrMalformedMessage; the parser recovers on its own
// and the next byte can be fed.
func (c *Client) Feed(b byte) (Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.p.feed(b, c.st)
}

// Reset drops any partially received message. Device State is kept.
//
// Call it after a transport disconnection.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.p.reset()
}

// Device State.

// DigitalRead returns the last reported input level of a pin.
func (c *Client) DigitalRead(p uint8) (gpio.Level, error) {
	if err := checkPin(p); err != nil {
		return gpio.Low, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.digitalInput[p>>3]&(1<<(p&7)) != 0, nil
}

// DigitalPort returns the last reported input bitmask of a port.
func (c *Client) DigitalPort(port uint8) (uint16, error) {
	if err := checkPort(port); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.digitalInput[port], nil
}

// OutputPort returns the output bitmask last written to a port.
func (c *Client) OutputPort(port uint8) (uint16, error) {
	if err := checkPort(port); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.digitalOutput[port], nil
}

// AnalogRead returns the last reported value of an analog channel.
func (c *Client) AnalogRead(channel uint8) (uint16, error) {
	if err := checkChannel(channel); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.analogInput[channel], nil
}

// AnalogChannel returns the analog channel of a pin, or AnalogChannelNone.
func (c *Client) AnalogChannel(p uint8) (uint8, error) {
	if err := checkPin(p); err != nil {
		return AnalogChannelNone, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.analogChannel[p], nil
}

// AnalogMapping returns the pin to analog channel mapping.
func (c *Client) AnalogMapping() AnalogMapping {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.analogMapping()
}

// PinMode returns the mode last set or reported for a pin, or PinModeUnset.
func (c *Client) PinMode(p uint8) (PinMode, error) {
	if err := checkPin(p); err != nil {
		return PinModeUnset, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.pinModes[p], nil
}

// StepperStatus returns the motion status of a stepper as last known by the
// host.
func (c *Client) StepperStatus(index uint8) (StepperStatus, error) {
	if err := checkStepper(index); err != nil {
		return StepperIdle, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.steppers[index], nil
}

// StepperPosition returns the last position reported by a stepper.
func (c *Client) StepperPosition(index uint8) (int32, error) {
	if err := checkStepper(index); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.stepperPos[index], nil
}

// Register returns a copy of the last reply received for a device register.
func (c *Client) Register(address, register uint16) ([]uint16, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.register(RegisterKey{Address: address, Register: register})
}

// Version returns the protocol version, 0.0 until the board reports it.
func (c *Client) Version() Version {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.version
}

// Firmware returns the last firmware report, zero until the board sends one.
func (c *Client) Firmware() FirmwareReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.firmware
}

// Capabilities returns the last capability reply. It must not be modified.
func (c *Client) Capabilities() Capabilities {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.capabilities
}

// Core commands.

// SetPinMode configures a pin.
func (c *Client) SetPinMode(p uint8, mode PinMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPinMode(p, mode)
}

func (c *Client) setPinMode(p uint8, mode PinMode) error {
	if err := checkPin(p); err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: pin mode %s", ErrInvalidArgument, mode)
	}
	c.st.pinModes[p] = mode
	return c.write(byte(SetPinMode), p, byte(mode))
}

// DigitalWrite sets the output level of a pin by writing its whole port.
// The other pins of the port keep the level last written to them.
//
// The output bitmask is updated before the write and is kept when the sink
// fails.
func (c *Client) DigitalWrite(p uint8, l gpio.Level) error {
	if err := checkPin(p); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	port, mask := c.st.writeOutputBit(p, bool(l))
	return c.write(byte(DigitalIOMessage)|port, byte(mask)&SevenBitMask, byte(mask>>7))
}

// SetDigitalPinValue sets the output level of a single pin. Like
// DigitalWrite, the output bitmask is updated even when the sink fails.
func (c *Client) SetDigitalPinValue(p uint8, l gpio.Level) error {
	if err := checkPin(p); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.writeOutputBit(p, bool(l))
	return c.write(byte(SetDigitalPinValue), p, boolToByte(bool(l)))
}

// AnalogWrite switches a pin to PWM and sets its duty cycle, 0 to 255.
func (c *Client) AnalogWrite(p, value uint8) error {
	if p >= MaxAnalogChannels {
		return fmt.Errorf("%w: analog write on pin %d, use ExtendedAnalogWrite", ErrInvalidArgument, p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.setPinMode(p, PinModePWM); err != nil {
		return err
	}
	return c.analogMessage(p, uint16(value))
}

// ServoWrite sets the angle of a servo, 0 to 180 degrees. The pin must have
// been configured with PinModeServo.
func (c *Client) ServoWrite(p, angle uint8) error {
	if p >= MaxAnalogChannels {
		return fmt.Errorf("%w: servo write on pin %d, use ExtendedAnalogWrite", ErrInvalidArgument, p)
	}
	if angle > 180 {
		return fmt.Errorf("%w: servo angle %d", ErrInvalidArgument, angle)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analogMessage(p, uint16(angle))
}

func (c *Client) analogMessage(p uint8, v uint16) error {
	lsb, msb := WordToTwoByte(v)
	return c.write(byte(AnalogIOMessage)|p, lsb, msb)
}

// ExtendedAnalogWrite writes an analog value to any pin, up to 28 bits.
func (c *Client) ExtendedAnalogWrite(p uint8, value uint32) error {
	if err := checkPin(p); err != nil {
		return err
	}
	if value >= 1<<28 {
		return fmt.Errorf("%w: extended analog value %d", ErrInvalidArgument, value)
	}
	payload := []byte{byte(SysExExtendedAnalog), p}
	for i := 0; i < 3 || value != 0; i++ {
		payload = append(payload, byte(value)&SevenBitMask)
		value >>= 7
	}
	return c.SendSysEx(payload...)
}

// ServoConfig sets the pulse range of a servo in microseconds.
func (c *Client) ServoConfig(p uint8, minPulse, maxPulse uint16) error {
	if err := checkPin(p); err != nil {
		return err
	}
	if minPulse > MaxUInt14 || maxPulse > MaxUInt14 || minPulse > maxPulse {
		return fmt.Errorf("%w: servo pulse range %d-%d", ErrInvalidArgument, minPulse, maxPulse)
	}
	minLSB, minMSB := WordToTwoByte(minPulse)
	maxLSB, maxMSB := WordToTwoByte(maxPulse)
	return c.SendSysEx(byte(SysExServoConfig), p, minLSB, minMSB, maxLSB, maxMSB)
}

// ReportAnalog enables or disables the reporting of an analog channel.
func (c *Client) ReportAnalog(channel uint8, enable bool) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(byte(ReportAnalogPin)|channel, boolToByte(enable))
}

// ReportDigital enables or disables the reporting of a port.
func (c *Client) ReportDigital(port uint8, enable bool) error {
	if err := checkPort(port); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(byte(ReportDigitalPort)|port, boolToByte(enable))
}

// SetSamplingInterval sets the analog reporting period in milliseconds.
func (c *Client) SetSamplingInterval(ms uint16) error {
	if ms > MaxUInt14 {
		return fmt.Errorf("%w: sampling interval %dms, max %dms", ErrInvalidArgument, ms, MaxUInt14)
	}
	lsb, msb := WordToTwoByte(ms)
	return c.SendSysEx(byte(SysExSamplingInterval), lsb, msb)
}

// SendReset resets the board.
func (c *Client) SendReset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(byte(SystemReset))
}

// QueryVersion asks for the protocol version. The reply is a VersionReported
// event.
func (c *Client) QueryVersion() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(byte(ProtocolVersion))
}

// QueryFirmware asks for the firmware name and version.
func (c *Client) QueryFirmware() error {
	return c.SendSysEx(byte(SysExReportFirmware))
}

// QueryAnalogMapping asks for the pin to analog channel mapping.
func (c *Client) QueryAnalogMapping() error {
	return c.SendSysEx(byte(SysExAnalogMappingQuery))
}

// Init asks the board for the information needed to address its pins.
func (c *Client) Init() error {
	return c.QueryAnalogMapping()
}

// QueryCapabilities asks for the modes supported by every pin.
func (c *Client) QueryCapabilities() error {
	return c.SendSysEx(byte(SysExCapabilityQuery))
}

// QueryPinState asks for the mode and state of a pin.
func (c *Client) QueryPinState(p uint8) error {
	if err := checkPin(p); err != nil {
		return err
	}
	return c.SendSysEx(byte(SysExPinStateQuery), p)
}

// SendSysEx frames payload between START_SYSEX and END_SYSEX. payload[0] is
// the sysex command. Every byte must be a data byte.
func (c *Client) SendSysEx(payload ...byte) error {
	if !isSevenBit(payload) {
		return fmt.Errorf("%w: sysex payload %s is not 7 bits", ErrInvalidArgument, SprintHexArray(payload))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendSysEx(payload)
}

func (c *Client) sendSysEx(payload []byte) error {
	if err := c.write(byte(StartSysEx)); err != nil {
		return err
	}
	if err := c.write(payload...); err != nil {
		return err
	}
	return c.write(byte(EndSysEx))
}

// Steppers.

// StepperStep enables the outputs of a stepper and moves it by steps. The
// stepper is Moving until the board reports the move complete. The status is
// set before the write, so it stays Moving when the sink fails.
func (c *Client) StepperStep(index uint8, steps int32) error {
	move, err := StepperStepPayload(index, steps)
	if err != nil {
		return err
	}
	return c.stepperMove(index, move)
}

// StepperTo enables the outputs of a stepper and moves it to position. The
// status follows StepperStep.
func (c *Client) StepperTo(index uint8, position int32) error {
	move, err := StepperToPayload(index, position)
	if err != nil {
		return err
	}
	return c.stepperMove(index, move)
}

func (c *Client) stepperMove(index uint8, move []byte) error {
	enable, err := StepperEnablePayload(index, true)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.steppers[index] = StepperMoving
	if err := c.sendSysEx(enable); err != nil {
		return err
	}
	return c.sendSysEx(move)
}

// Stepper returns a handle on stepper index.
func (c *Client) Stepper(index uint8) (*Stepper, error) {
	if err := checkStepper(index); err != nil {
		return nil, err
	}
	return &Stepper{c: c, index: index}, nil
}

// Pin returns the periph adapter of pin p.
func (c *Client) Pin(p uint8) (*Pin, error) {
	if err := checkPin(p); err != nil {
		return nil, err
	}
	return &Pin{c: c, n: p}, nil
}

// write must be called with mu held. It stops at the first sink error.
func (c *Client) write(b ...byte) error {
	for _, v := range b {
		if err := c.sink.WriteByte(v); err != nil {
			return err
		}
	}
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func checkPin(p uint8) error {
	if p >= MaxPins {
		return fmt.Errorf("%w: pin %d, max %d", ErrInvalidArgument, p, MaxPins-1)
	}
	return nil
}

func checkPort(port uint8) error {
	if port >= MaxPorts {
		return fmt.Errorf("%w: port %d, max %d", ErrInvalidArgument, port, MaxPorts-1)
	}
	return nil
}

func checkChannel(channel uint8) error {
	if channel >= MaxAnalogChannels {
		return fmt.Errorf("%w: analog channel %d, max %d", ErrInvalidArgument, channel, MaxAnalogChannels-1)
	}
	return nil
}
