package grf250

// Command ids addressed by the GRF-250.
const (
	CmdProductName           byte = 0
	CmdHardwareVersion       byte = 1
	CmdFirmwareVersion       byte = 2
	CmdSerialNumber          byte = 3
	CmdUserData              byte = 9
	CmdToken                 byte = 10
	CmdSaveParameters        byte = 12
	CmdReset                 byte = 14
	CmdDistanceConfig        byte = 27
	CmdStream                byte = 30
	CmdDistanceData          byte = 44
	CmdMultiData             byte = 45
	CmdLaserFiring           byte = 50
	CmdTemperature           byte = 55
	CmdAutoExposure          byte = 70
	CmdUpdateRate            byte = 74
	CmdAlarmStatus           byte = 76
	CmdAlarmReturnMode       byte = 77
	CmdLostSignalCounter     byte = 78
	CmdAlarmADistance        byte = 79
	CmdAlarmBDistance        byte = 80
	CmdAlarmHysteresis       byte = 81
	CmdGPIOMode              byte = 83
	CmdGPIOAlarmConfirmCount byte = 84
	CmdMedianFilterEnable    byte = 86
	CmdMedianFilterSize      byte = 87
	CmdSmoothFilterEnable    byte = 88
	CmdSmoothFilterFactor    byte = 89
	CmdBaudRate              byte = 91
	CmdI2CAddress            byte = 92
	CmdRollingAverageEnable  byte = 93
	CmdRollingAverageSize    byte = 94
	CmdSleep                 byte = 98
	CmdLEDState              byte = 110
	CmdZeroOffset            byte = 114
)

// sleepMagic is the value the sleep command requires as its payload.
const sleepMagic = 123
