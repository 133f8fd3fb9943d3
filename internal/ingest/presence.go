package ingest

import "encoding/json"

// encoding/json silently drops unexported fields, so the hasX presence
// flags on wireJob/wireBreak/wireVehicle need a second decode pass over
// the raw object to know which keys were actually sent. input_parser.cpp
// makes the same distinction with rapidjson's HasMember before reading
// amount/pickup/delivery/time_windows/max_load, since an absent key and
// an explicitly empty array mean different things (§6).
type rawJob wireJob

func (w *wireJob) UnmarshalJSON(data []byte) error {
	var a rawJob
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*w = wireJob(a)
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}
	_, w.hasDelivery = present["delivery"]
	_, w.hasPickup = present["pickup"]
	_, w.hasAmount = present["amount"]
	_, w.hasTimeWindows = present["time_windows"]
	return nil
}

type rawBreak wireBreak

func (b *wireBreak) UnmarshalJSON(data []byte) error {
	var a rawBreak
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*b = wireBreak(a)
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}
	_, b.hasMaxLoad = present["max_load"]
	_, b.hasTimeWindows = present["time_windows"]
	return nil
}

type rawVehicle wireVehicle

func (v *wireVehicle) UnmarshalJSON(data []byte) error {
	var a rawVehicle
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*v = wireVehicle(a)
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}
	_, v.hasTimeWindows = present["time_windows"]
	return nil
}
