package grf250

import "fmt"

// Stream selects which data the sensor emits unsolicited.
type Stream uint32

const (
	StreamNone     Stream = 0
	StreamDistance Stream = 5
	StreamMulti    Stream = 6
)

// ReturnMode selects which laser return the alarms evaluate.
type ReturnMode uint8

const (
	FirstReturn ReturnMode = 0
	LastReturn  ReturnMode = 1
)

// GPIOMode selects what drives the output pin.
type GPIOMode uint8

const (
	GPIONoOutput GPIOMode = 0
	GPIOAlarmA   GPIOMode = 1
	GPIOAlarmB   GPIOMode = 2
)

// BaudRate is the serial speed as the device encodes it.
type BaudRate uint8

const (
	Baud9600 BaudRate = iota
	Baud19200
	Baud38400
	Baud57600
	Baud115200
	Baud230400
	Baud460800
	Baud921600
)

// DistanceConfig selects which fields the distance data response carries.
// The response packs the selected fields in declaration order, so parsing
// must use the same config the sensor was configured with.
type DistanceConfig uint32

const (
	DistanceFirstReturnRaw DistanceConfig = 1 << iota
	DistanceFirstReturnFiltered
	DistanceFirstReturnStrength
	DistanceLastReturnRaw
	DistanceLastReturnFiltered
	DistanceLastReturnStrength
	DistanceTemperature
	DistanceAlarmStatus

	DistanceAll DistanceConfig = 0xFF
)

// FirmwareVersion is the expanded form of the packed 32-bit version.
type FirmwareVersion struct {
	Major uint32
	Minor uint32
	Patch uint32
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ExpandFirmwareVersion unpacks a 32-bit firmware version.
func ExpandFirmwareVersion(version uint32) FirmwareVersion {
	return FirmwareVersion{
		Major: (version >> 16) & 0xFF,
		Minor: (version >> 8) & 0xFF,
		Patch: version & 0xFF,
	}
}

// ProductInfo aggregates the device identity commands.
type ProductInfo struct {
	ProductName        string
	HardwareVersion    uint32
	FirmwareVersionRaw uint32
	FirmwareVersion    FirmwareVersion
	SerialNumber       string
}

// DistanceData holds one distance measurement. Only the fields selected
// by the DistanceConfig in use are populated.
type DistanceData struct {
	FirstReturnRawMM      int32
	FirstReturnFilteredMM int32
	FirstReturnStrength   int32

	LastReturnRawMM      int32
	LastReturnFilteredMM int32
	LastReturnStrength   int32

	Temperature int32
	AlarmStatus int32
}

// MultiSignal is one of the five strongest returns.
type MultiSignal struct {
	DistanceCM int32
	Strength   int32
}

// MultiData holds the multi-return measurement.
type MultiData struct {
	Signals     [5]MultiSignal
	Temperature int32
}

// AlarmStatus reports both alarm outputs.
type AlarmStatus struct {
	AlarmA bool
	AlarmB bool
}
