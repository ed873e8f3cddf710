package message

import (
	"strconv"
)

// troubleField describes one position of the 34-character SS trouble
// string. Most positions are plain booleans ('0'/'1'); a few carry a
// zone number digit instead, in which case Label is rendered with the
// zone appended (§4.5, §8 ex. 10).
type troubleField struct {
	Label      string
	ZoneDigit  bool
}

// troubleTable is position-indexed against the panel's 34-character SS
// payload. Positions with an empty Label are reserved/unused and never
// contribute text.
var troubleTable = [34]troubleField{
	0:  {Label: "AC Fail"},
	1:  {Label: "Box Tamper", ZoneDigit: true},
	2:  {Label: "Fail To Communicate"},
	3:  {Label: "EEProm Memory Error"},
	4:  {Label: "Low Battery Control"},
	5:  {Label: "Transmitter Low Battery", ZoneDigit: true},
	6:  {Label: "Over Current"},
	7:  {Label: "Telephone Fault"},
	9:  {Label: "Output 2"},
	10: {Label: "Missing Keypad"},
	11: {Label: "Zone Expander"},
	12: {Label: "Output Expander"},
	14: {Label: "ELKRP Remote Access"},
	16: {Label: "Common Area Not Armed"},
	17: {Label: "Flash Memory Error"},
	18: {Label: "Security Alert", ZoneDigit: true},
	19: {Label: "Serial Port Expander"},
	20: {Label: "Lost Transmitter", ZoneDigit: true},
	21: {Label: "GE Smoke CleanMe"},
	22: {Label: "Ethernet"},
	31: {Label: "Display Message In Keypad Line 1"},
	32: {Label: "Display Message In Keypad Line 2"},
	33: {Label: "Fire", ZoneDigit: true},
}

// DecodeTroubleString decodes a 34-character SS payload into one label per
// active trouble, in position order; SystemTrouble.Summary joins them with
// ", ". Positions are skipped when their encoded value is zero.
func DecodeTroubleString(raw string) []string {
	var out []string
	for i := 0; i < len(raw) && i < len(troubleTable); i++ {
		f := troubleTable[i]
		if f.Label == "" {
			continue
		}
		v := raw[i]
		if v == '0' {
			continue
		}
		if f.ZoneDigit {
			out = append(out, f.Label+" zone "+strconv.Itoa(int(v-'0')))
		} else if v != '0' {
			out = append(out, f.Label)
		}
	}
	return out
}
