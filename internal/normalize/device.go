package normalize

import "github.com/noa-park/backoffice/internal/upstream"

type DeviceType string

const (
	DeviceDeductive DeviceType = "deductive"
	DeviceTimed     DeviceType = "timed"
	DeviceTimedList DeviceType = "timedList"
)

type DeviceStatus string

const (
	DeviceActive  DeviceStatus = "active"
	DeviceOffline DeviceStatus = "offline"
)

// Device is the view model the device management screens consume.
// Numeric upstream fields are carried as strings because the admin
// forms edit them as free text.
type Device struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              DeviceType   `json:"type"`
	Status            DeviceStatus `json:"status"`
	UseGift           bool         `json:"useGift"`
	DeviceTime        string       `json:"deviceTime"`
	AlarmTime         string       `json:"alarmTime"`
	InterCardInterval string       `json:"interCardInterval"`
}

// DeviceFromRaw maps the upstream device record onto the view model:
// type DECREMENTAL -> deductive, TIME_LIST -> timedList, anything else
// -> timed; status ACTIVE -> active, anything else -> offline.
func DeviceFromRaw(raw upstream.RawDevice) Device {
	d := Device{
		ID:                coerceString(raw.ID),
		Name:              raw.Name,
		Type:              DeviceTimed,
		Status:            DeviceOffline,
		UseGift:           raw.AllowGift,
		DeviceTime:        coerceNumberString(raw.Time, ""),
		AlarmTime:         coerceNumberString(raw.EndTimeAlarm, ""),
		InterCardInterval: coerceNumberString(raw.StopNextCards, "0"),
	}

	switch raw.Type {
	case "DECREMENTAL":
		d.Type = DeviceDeductive
	case "TIME_LIST":
		d.Type = DeviceTimedList
	}

	if raw.Status == "ACTIVE" {
		d.Status = DeviceActive
	}

	return d
}

// DeviceToRaw is the inverse mapping used for writes.
func DeviceToRaw(d Device) upstream.RawDevice {
	raw := upstream.RawDevice{
		ID:            d.ID,
		Name:          d.Name,
		Type:          "TIMED",
		Status:        "INACTIVE",
		AllowGift:     d.UseGift,
		Time:          d.DeviceTime,
		EndTimeAlarm:  d.AlarmTime,
		StopNextCards: d.InterCardInterval,
	}

	switch d.Type {
	case DeviceDeductive:
		raw.Type = "DECREMENTAL"
	case DeviceTimedList:
		raw.Type = "TIME_LIST"
	}

	if d.Status == DeviceActive {
		raw.Status = "ACTIVE"
	}

	return raw
}
