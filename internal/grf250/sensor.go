package grf250

import (
	"fmt"
	"time"

	"github.com/edgeoptics/rangelink/internal/device"
	"github.com/edgeoptics/rangelink/internal/protocol"
)

// Sensor is the managed command surface of one GRF-250. It drives the
// engine's request/response cycle, so the same single-outstanding-request
// rule applies: one goroutine per Sensor.
type Sensor struct {
	dev *device.Device
}

func New(dev *device.Device) *Sensor {
	return &Sensor{dev: dev}
}

// Device exposes the underlying engine, mainly for harnesses that mix
// managed commands with raw waits.
func (s *Sensor) Device() *device.Device {
	return s.dev
}

// Wake sends the serial initiation sequence. The sensor ignores it when
// already awake, so it is safe to send on every connect.
func (s *Sensor) Wake() error {
	if s.dev.Transport().Send([]byte("UUU")) == 0 {
		return device.ErrTransport
	}
	return nil
}

// ----------------------------------------------------------------------------
// Identity.
// ----------------------------------------------------------------------------

func (s *Sensor) ProductName() (string, error) {
	return s.readString(CmdProductName)
}

func (s *Sensor) HardwareVersion() (uint32, error) {
	return s.readUint32(CmdHardwareVersion)
}

func (s *Sensor) FirmwareVersion() (FirmwareVersion, error) {
	raw, err := s.readUint32(CmdFirmwareVersion)
	if err != nil {
		return FirmwareVersion{}, err
	}
	return ExpandFirmwareVersion(raw), nil
}

func (s *Sensor) SerialNumber() (string, error) {
	return s.readString(CmdSerialNumber)
}

// ProductInfo reads the full device identity in one call.
func (s *Sensor) ProductInfo() (ProductInfo, error) {
	var info ProductInfo
	var err error

	if info.ProductName, err = s.ProductName(); err != nil {
		return ProductInfo{}, err
	}
	if info.HardwareVersion, err = s.HardwareVersion(); err != nil {
		return ProductInfo{}, err
	}
	if info.FirmwareVersionRaw, err = s.readUint32(CmdFirmwareVersion); err != nil {
		return ProductInfo{}, err
	}
	info.FirmwareVersion = ExpandFirmwareVersion(info.FirmwareVersionRaw)
	if info.SerialNumber, err = s.SerialNumber(); err != nil {
		return ProductInfo{}, err
	}

	return info, nil
}

// ----------------------------------------------------------------------------
// User data and token-gated operations.
// ----------------------------------------------------------------------------

// UserData reads the 16 bytes of persisted user storage.
func (s *Sensor) UserData() ([]byte, error) {
	if err := s.dev.Do(protocol.NewReadRequest(CmdUserData)); err != nil {
		return nil, err
	}
	return protocol.PacketData(s.dev.Response.Bytes(), 16, 0), nil
}

func (s *Sensor) SetUserData(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("grf250: user data must be 16 bytes, got %d: %w",
			len(data), device.ErrInvalidParameter)
	}
	req, err := protocol.NewWriteRequest(CmdUserData, data)
	if err != nil {
		return err
	}
	return s.dev.Do(req)
}

func (s *Sensor) Token() (uint16, error) {
	if err := s.dev.Do(protocol.NewReadRequest(CmdToken)); err != nil {
		return 0, err
	}
	return s.dev.Response.Uint16At(0), nil
}

// SaveParameters persists the current configuration. The device requires
// a fresh token with every save, so this reads one first.
func (s *Sensor) SaveParameters() error {
	token, err := s.Token()
	if err != nil {
		return err
	}
	return s.dev.Do(protocol.NewWriteRequestUint16(CmdSaveParameters, token))
}

// Reset restarts the device, token-gated like SaveParameters.
func (s *Sensor) Reset() error {
	token, err := s.Token()
	if err != nil {
		return err
	}
	return s.dev.Do(protocol.NewWriteRequestUint16(CmdReset, token))
}

// ----------------------------------------------------------------------------
// Measurement.
// ----------------------------------------------------------------------------

func (s *Sensor) DistanceConfig() (DistanceConfig, error) {
	v, err := s.readUint32(CmdDistanceConfig)
	return DistanceConfig(v), err
}

func (s *Sensor) SetDistanceConfig(config DistanceConfig) error {
	return s.writeUint32(CmdDistanceConfig, uint32(config))
}

func (s *Sensor) Stream() (Stream, error) {
	v, err := s.readUint32(CmdStream)
	return Stream(v), err
}

func (s *Sensor) SetStream(stream Stream) error {
	switch stream {
	case StreamNone, StreamDistance, StreamMulti:
	default:
		return fmt.Errorf("grf250: unknown stream mode %d: %w",
			stream, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdStream, uint32(stream))
}

// DistanceData polls one measurement. config must match the sensor's
// active distance configuration.
func (s *Sensor) DistanceData(config DistanceConfig) (DistanceData, error) {
	if err := s.dev.Do(protocol.NewReadRequest(CmdDistanceData)); err != nil {
		return DistanceData{}, err
	}
	return ParseDistanceData(&s.dev.Response, config)
}

func (s *Sensor) MultiData() (MultiData, error) {
	if err := s.dev.Do(protocol.NewReadRequest(CmdMultiData)); err != nil {
		return MultiData{}, err
	}
	return ParseMultiData(&s.dev.Response)
}

// WaitForStreamedDistance waits for the next unsolicited distance packet.
// A zero timeout polls non-blocking and may return device.ErrAgain.
func (s *Sensor) WaitForStreamedDistance(config DistanceConfig, timeout time.Duration) (DistanceData, error) {
	if err := s.dev.WaitForNextResponse(CmdDistanceData, timeout); err != nil {
		return DistanceData{}, err
	}
	return ParseDistanceData(&s.dev.Response, config)
}

// WaitForStreamedMultiData waits for the next unsolicited multi-return
// packet.
func (s *Sensor) WaitForStreamedMultiData(timeout time.Duration) (MultiData, error) {
	if err := s.dev.WaitForNextResponse(CmdMultiData, timeout); err != nil {
		return MultiData{}, err
	}
	return ParseMultiData(&s.dev.Response)
}

func (s *Sensor) Temperature() (int32, error) {
	if err := s.dev.Do(protocol.NewReadRequest(CmdTemperature)); err != nil {
		return 0, err
	}
	return s.dev.Response.Int32At(0), nil
}

// ----------------------------------------------------------------------------
// Laser and exposure.
// ----------------------------------------------------------------------------

func (s *Sensor) LaserFiring() (bool, error) {
	return s.readBool(CmdLaserFiring)
}

func (s *Sensor) SetLaserFiring(enabled bool) error {
	return s.writeBool(CmdLaserFiring, enabled)
}

func (s *Sensor) AutoExposure() (bool, error) {
	return s.readBool(CmdAutoExposure)
}

func (s *Sensor) SetAutoExposure(enabled bool) error {
	return s.writeBool(CmdAutoExposure, enabled)
}

func (s *Sensor) UpdateRate() (uint32, error) {
	return s.readUint32(CmdUpdateRate)
}

func (s *Sensor) SetUpdateRate(rate uint32) error {
	if rate < 1 || rate > 50 {
		return fmt.Errorf("grf250: update rate %d out of range [1,50]: %w",
			rate, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdUpdateRate, rate)
}

// ----------------------------------------------------------------------------
// Alarms.
// ----------------------------------------------------------------------------

func (s *Sensor) AlarmStatus() (AlarmStatus, error) {
	if err := s.dev.Do(protocol.NewReadRequest(CmdAlarmStatus)); err != nil {
		return AlarmStatus{}, err
	}
	return ParseAlarmStatus(&s.dev.Response)
}

func (s *Sensor) AlarmReturnMode() (ReturnMode, error) {
	v, err := s.readUint8(CmdAlarmReturnMode)
	return ReturnMode(v), err
}

func (s *Sensor) SetAlarmReturnMode(mode ReturnMode) error {
	if mode != FirstReturn && mode != LastReturn {
		return fmt.Errorf("grf250: unknown return mode %d: %w",
			mode, device.ErrInvalidParameter)
	}
	return s.writeUint8(CmdAlarmReturnMode, uint8(mode))
}

func (s *Sensor) LostSignalCounter() (uint32, error) {
	return s.readUint32(CmdLostSignalCounter)
}

func (s *Sensor) SetLostSignalCounter(counter uint32) error {
	if counter < 1 || counter > 250 {
		return fmt.Errorf("grf250: lost signal counter %d out of range [1,250]: %w",
			counter, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdLostSignalCounter, counter)
}

// AlarmADistance reports the alarm A threshold in centimeters. The wire
// value is in decimeters, converted here.
func (s *Sensor) AlarmADistance() (uint32, error) {
	v, err := s.readUint32(CmdAlarmADistance)
	return v * 10, err
}

func (s *Sensor) SetAlarmADistance(distanceCM uint32) error {
	if distanceCM > 30000 {
		return fmt.Errorf("grf250: alarm A distance %d cm exceeds 30000: %w",
			distanceCM, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdAlarmADistance, distanceCM/10)
}

func (s *Sensor) AlarmBDistance() (uint32, error) {
	v, err := s.readUint32(CmdAlarmBDistance)
	return v * 10, err
}

func (s *Sensor) SetAlarmBDistance(distanceCM uint32) error {
	if distanceCM > 30000 {
		return fmt.Errorf("grf250: alarm B distance %d cm exceeds 30000: %w",
			distanceCM, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdAlarmBDistance, distanceCM/10)
}

func (s *Sensor) AlarmHysteresis() (uint32, error) {
	v, err := s.readUint32(CmdAlarmHysteresis)
	return v * 10, err
}

func (s *Sensor) SetAlarmHysteresis(hysteresisCM uint32) error {
	if hysteresisCM > 3000 {
		return fmt.Errorf("grf250: alarm hysteresis %d cm exceeds 3000: %w",
			hysteresisCM, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdAlarmHysteresis, hysteresisCM/10)
}

// ----------------------------------------------------------------------------
// GPIO.
// ----------------------------------------------------------------------------

func (s *Sensor) GPIOMode() (GPIOMode, error) {
	v, err := s.readUint8(CmdGPIOMode)
	return GPIOMode(v), err
}

func (s *Sensor) SetGPIOMode(mode GPIOMode) error {
	switch mode {
	case GPIONoOutput, GPIOAlarmA, GPIOAlarmB:
	default:
		return fmt.Errorf("grf250: unknown gpio mode %d: %w",
			mode, device.ErrInvalidParameter)
	}
	return s.writeUint8(CmdGPIOMode, uint8(mode))
}

func (s *Sensor) GPIOAlarmConfirmCount() (uint32, error) {
	return s.readUint32(CmdGPIOAlarmConfirmCount)
}

func (s *Sensor) SetGPIOAlarmConfirmCount(count uint32) error {
	if count > 1000 {
		return fmt.Errorf("grf250: gpio alarm confirm count %d exceeds 1000: %w",
			count, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdGPIOAlarmConfirmCount, count)
}

// ----------------------------------------------------------------------------
// Filtering.
// ----------------------------------------------------------------------------

func (s *Sensor) MedianFilterEnabled() (bool, error) {
	return s.readBool(CmdMedianFilterEnable)
}

func (s *Sensor) SetMedianFilterEnabled(enabled bool) error {
	return s.writeBool(CmdMedianFilterEnable, enabled)
}

func (s *Sensor) MedianFilterSize() (uint32, error) {
	return s.readUint32(CmdMedianFilterSize)
}

func (s *Sensor) SetMedianFilterSize(size uint32) error {
	if size < 3 || size > 32 {
		return fmt.Errorf("grf250: median filter size %d out of range [3,32]: %w",
			size, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdMedianFilterSize, size)
}

func (s *Sensor) SmoothFilterEnabled() (bool, error) {
	return s.readBool(CmdSmoothFilterEnable)
}

func (s *Sensor) SetSmoothFilterEnabled(enabled bool) error {
	return s.writeBool(CmdSmoothFilterEnable, enabled)
}

func (s *Sensor) SmoothFilterFactor() (uint32, error) {
	return s.readUint32(CmdSmoothFilterFactor)
}

func (s *Sensor) SetSmoothFilterFactor(factor uint32) error {
	if factor < 1 || factor > 99 {
		return fmt.Errorf("grf250: smooth filter factor %d out of range [1,99]: %w",
			factor, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdSmoothFilterFactor, factor)
}

func (s *Sensor) RollingAverageEnabled() (bool, error) {
	return s.readBool(CmdRollingAverageEnable)
}

func (s *Sensor) SetRollingAverageEnabled(enabled bool) error {
	return s.writeBool(CmdRollingAverageEnable, enabled)
}

func (s *Sensor) RollingAverageSize() (uint32, error) {
	return s.readUint32(CmdRollingAverageSize)
}

func (s *Sensor) SetRollingAverageSize(size uint32) error {
	if size < 2 || size > 32 {
		return fmt.Errorf("grf250: rolling average size %d out of range [2,32]: %w",
			size, device.ErrInvalidParameter)
	}
	return s.writeUint32(CmdRollingAverageSize, size)
}

// ----------------------------------------------------------------------------
// Interface and misc.
// ----------------------------------------------------------------------------

func (s *Sensor) BaudRate() (BaudRate, error) {
	v, err := s.readUint8(CmdBaudRate)
	return BaudRate(v), err
}

func (s *Sensor) SetBaudRate(rate BaudRate) error {
	if rate > Baud921600 {
		return fmt.Errorf("grf250: unknown baud rate code %d: %w",
			rate, device.ErrInvalidParameter)
	}
	return s.writeUint8(CmdBaudRate, uint8(rate))
}

func (s *Sensor) I2CAddress() (uint8, error) {
	return s.readUint8(CmdI2CAddress)
}

func (s *Sensor) SetI2CAddress(address uint8) error {
	return s.writeUint8(CmdI2CAddress, address)
}

// Sleep puts the device into low-power mode until the next serial
// activity.
func (s *Sensor) Sleep() error {
	return s.writeUint8(CmdSleep, sleepMagic)
}

func (s *Sensor) LEDEnabled() (bool, error) {
	return s.readBool(CmdLEDState)
}

func (s *Sensor) SetLEDEnabled(enabled bool) error {
	return s.writeBool(CmdLEDState, enabled)
}

// ZeroOffset reports the distance offset in centimeters. The wire value
// is in decimeters.
func (s *Sensor) ZeroOffset() (int32, error) {
	if err := s.dev.Do(protocol.NewReadRequest(CmdZeroOffset)); err != nil {
		return 0, err
	}
	return s.dev.Response.Int32At(0) * 10, nil
}

func (s *Sensor) SetZeroOffset(offsetCM int32) error {
	if offsetCM < -1000 || offsetCM > 1000 {
		return fmt.Errorf("grf250: zero offset %d cm out of range [-1000,1000]: %w",
			offsetCM, device.ErrInvalidParameter)
	}
	return s.dev.Do(protocol.NewWriteRequestInt32(CmdZeroOffset, offsetCM/10))
}

// ----------------------------------------------------------------------------
// Shared read/write helpers.
// ----------------------------------------------------------------------------

func (s *Sensor) readString(cmd byte) (string, error) {
	if err := s.dev.Do(protocol.NewReadRequest(cmd)); err != nil {
		return "", err
	}
	return s.dev.Response.StringAt(0), nil
}

func (s *Sensor) readUint8(cmd byte) (uint8, error) {
	if err := s.dev.Do(protocol.NewReadRequest(cmd)); err != nil {
		return 0, err
	}
	return s.dev.Response.Uint8At(0), nil
}

func (s *Sensor) readUint32(cmd byte) (uint32, error) {
	if err := s.dev.Do(protocol.NewReadRequest(cmd)); err != nil {
		return 0, err
	}
	return s.dev.Response.Uint32At(0), nil
}

func (s *Sensor) readBool(cmd byte) (bool, error) {
	v, err := s.readUint8(cmd)
	return v != 0, err
}

func (s *Sensor) writeUint8(cmd byte, value uint8) error {
	return s.dev.Do(protocol.NewWriteRequestUint8(cmd, value))
}

func (s *Sensor) writeUint32(cmd byte, value uint32) error {
	return s.dev.Do(protocol.NewWriteRequestUint32(cmd, value))
}

func (s *Sensor) writeBool(cmd byte, enabled bool) error {
	var v uint8
	if enabled {
		v = 1
	}
	return s.writeUint8(cmd, v)
}
