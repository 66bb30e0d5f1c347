package grf250

import (
	"fmt"

	"github.com/edgeoptics/rangelink/internal/device"
	"github.com/edgeoptics/rangelink/internal/protocol"
)

func checkCommand(resp *protocol.Response, want byte) error {
	if resp.CommandID != want {
		return fmt.Errorf("grf250: got command %d response, want %d: %w",
			resp.CommandID, want, device.ErrWrongCommandID)
	}
	return nil
}

// ParseDistanceData decodes a distance data response. config must match
// the distance configuration active on the sensor, since it determines
// which fields are present and at which offsets.
func ParseDistanceData(resp *protocol.Response, config DistanceConfig) (DistanceData, error) {
	if err := checkCommand(resp, CmdDistanceData); err != nil {
		return DistanceData{}, err
	}

	var data DistanceData
	offset := 0
	next := func() int32 {
		v := resp.Int32At(offset)
		offset += 4
		return v
	}

	if config&DistanceFirstReturnRaw != 0 {
		data.FirstReturnRawMM = next() * 100
	}
	if config&DistanceFirstReturnFiltered != 0 {
		data.FirstReturnFilteredMM = next() * 100
	}
	if config&DistanceFirstReturnStrength != 0 {
		data.FirstReturnStrength = next()
	}
	if config&DistanceLastReturnRaw != 0 {
		data.LastReturnRawMM = next() * 100
	}
	if config&DistanceLastReturnFiltered != 0 {
		data.LastReturnFilteredMM = next() * 100
	}
	if config&DistanceLastReturnStrength != 0 {
		data.LastReturnStrength = next()
	}
	if config&DistanceTemperature != 0 {
		data.Temperature = next()
	}
	if config&DistanceAlarmStatus != 0 {
		data.AlarmStatus = next()
	}

	return data, nil
}

// ParseMultiData decodes a multi-return response: five distance/strength
// pairs followed by the temperature.
func ParseMultiData(resp *protocol.Response) (MultiData, error) {
	if err := checkCommand(resp, CmdMultiData); err != nil {
		return MultiData{}, err
	}

	var data MultiData
	offset := 0
	for i := range data.Signals {
		data.Signals[i].DistanceCM = resp.Int32At(offset) / 10
		offset += 4
		data.Signals[i].Strength = resp.Int32At(offset)
		offset += 4
	}
	data.Temperature = resp.Int32At(offset)

	return data, nil
}

// ParseAlarmStatus decodes the packed alarm status response.
func ParseAlarmStatus(resp *protocol.Response) (AlarmStatus, error) {
	if err := checkCommand(resp, CmdAlarmStatus); err != nil {
		return AlarmStatus{}, err
	}

	status := resp.Uint32At(0)
	return AlarmStatus{
		AlarmA: status&0xFF != 0,
		AlarmB: (status>>8)&0xFF != 0,
	}, nil
}
