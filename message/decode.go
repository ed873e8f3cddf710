package message

import (
	"strconv"
	"strings"
	"time"
)

// Message is implemented by every decoded record. Code identifies the
// wire message code the record was decoded from, including the synthetic
// "unknown" code for unrecognized frames.
type Message interface {
	Code() Code
}

// base gives every concrete record type its Code() method without
// repeating the field.
type base struct {
	code Code
}

func (b base) Code() Code { return b.code }

// Unknown is returned for any recognized-as-a-frame but unrecognized
// message code (§4.1): "unrecognized codes yield a generic record rather
// than an error".
type Unknown struct {
	base
	MsgCode Code
	Data    string
}

// ArmingStatus decodes AS: three ordered 8-element sequences (§4.1 ex. 2).
type ArmingStatus struct {
	base
	Armed  [8]ArmedStatus
	ArmUp  [8]ArmUpState
	Alarm  [8]AlarmState
}

// AlarmByZone decodes AZ: 208 per-zone alarm-state chars.
type AlarmByZone struct {
	base
	Zone [208]byte // raw alarm-state char per zone, caller-interpreted
}

// ZoneChange decodes ZC: a single zone's status nibble.
type ZoneChange struct {
	base
	Zone     int // base-0
	Logical  ZoneLogicalStatus
	Physical ZonePhysicalStatus
}

// ZoneStatuses decodes ZS: all 208 zone status nibbles.
type ZoneStatuses struct {
	base
	Logical  [208]ZoneLogicalStatus
	Physical [208]ZonePhysicalStatus
}

// ZoneDefinitions decodes ZD: all 208 zone type codes.
type ZoneDefinitions struct {
	base
	Definition [208]ZoneType
}

// ZonePartitions decodes ZP: all 208 zone area assignments (base-0).
type ZonePartitions struct {
	base
	Area [208]int
}

// ZoneVoltage decodes ZV: one zone's voltage reading in tenths of a volt.
type ZoneVoltage struct {
	base
	Zone    int // base-0
	Voltage int // tenths of a volt
}

// ZoneBypass decodes ZB: a bypass state change, or a bypass-all/clear-all
// sentinel (wire zone 000 or 999) that the caller must treat as "refresh
// all zone statuses" rather than a single zone update (§4.5, §8 ex. 5).
type ZoneBypass struct {
	base
	Zone       int // base-0; meaningless when All is true
	All        bool
	Bypassed   bool
}

// Temperatures decodes LW: 16 keypad and 16 zone temperatures, offset
// normalized at decode time (§4.1).
type Temperatures struct {
	base
	Keypad [16]int // degrees, sentinel -40 = unknown
	Zone   [16]int // degrees, sentinel -60 = unknown
}

// TempGroup identifies which offset applies to a single ST reading.
type TempGroup byte

const (
	TempGroupZone TempGroup = iota
	TempGroupKeypad
	TempGroupThermostat
)

// SingleTemp decodes ST: a single group-tagged temperature reading.
type SingleTemp struct {
	base
	Group TempGroup
	Index int // base-0 within its group
	Temp  int // degrees, offset already applied per Group
}

// CustomValue decodes CR: either one setting's value or, when the panel
// reports the "all units" run, every configured setting at once.
type CustomValue struct {
	base
	All    bool
	Index  int // base-0; meaningless when All is true
	Values [20]CustomSetting
}

// CustomSetting is a single decoded CR value.
type CustomSetting struct {
	Format SettingFormat
	Value  int // NUMBER/TIMER: raw value. TIME_OF_DAY: hour*256+minute.
}

// Hour and Minute decode a TIME_OF_DAY CustomSetting's packed Value.
func (s CustomSetting) Hour() int   { return s.Value / 256 }
func (s CustomSetting) Minute() int { return s.Value % 256 }

// KeypadFunction decodes KF: a keypad function-key press plus the area's
// 8 chime-mode values.
type KeypadFunction struct {
	base
	Keypad     int // base-0
	Key        byte
	ChimeMode  [8]ChimeMode
}

// LogEntry decodes LD: one event-log record with a UTC timestamp
// reconstructed from local wall-clock fields (§4.1).
type LogEntry struct {
	base
	Index     int
	EventType int
	EventData int
	Area      int
	Timestamp time.Time
}

// Description decodes SD: a 16-character label with the keypad-display
// high bit already stripped (§4.1).
type Description struct {
	base
	DescType      int
	Unit          int // base-0
	Name          string
	ShowOnKeypad  bool
}

// UserAreas decodes UA: the set of areas a user code is valid for, plus
// the panel-wide temperature units and user-code length (§4.5). A UA
// response to a "ua 0" sentinel request also serves as the sync-complete
// marker; the Facade recognizes it by this record's User field being 0.
type UserAreas struct {
	base
	User       int // the user code itself; 0 for the ua(0) sync sentinel
	Areas      [8]bool
	TempUnits  TempUnits
	CodeLength int
}

// LightStatus decodes PC: a single light's level (0-99).
type LightStatus struct {
	base
	Index  int // base-0
	Status int
}

// LightBank decodes PS: a 64-wide bank of light levels.
type LightBank struct {
	base
	Bank   int
	Status [64]int
}

// ThermostatReport decodes TR: a full thermostat reading.
type ThermostatReport struct {
	base
	Index       int // base-0
	Mode        ThermostatMode
	Hold        bool
	Fan         ThermostatFan
	CurrentTemp int
	HeatSetpoint int
	CoolSetpoint int
	Humidity    int
}

// Version decodes VN: firmware version strings.
type Version struct {
	base
	MainFirmware string
	XEPFirmware  string
}

// RemoteProgramming decodes RP: remote-programming session status.
type RemoteProgramming struct {
	base
	Status RPStatus
}

// SystemTrouble decodes SS: the 34-character position-encoded trouble
// string into booleans plus zone-encoded digits (§4.5, §8 ex. 10).
type SystemTrouble struct {
	base
	Raw      string
	Troubles []string
}

// Summary renders the decoded troubles as a comma-joined human string,
// e.g. "AC Fail, Box Tamper zone 7, Low Battery Control" (§8 ex. 10).
func (s SystemTrouble) Summary() string {
	return strings.Join(s.Troubles, ", ")
}

// UserCodeEntered decodes IC: a user-code entry attempt. EnteredCode is
// replaced by "****" when User is a valid index (successful entry); the
// raw code is retained only for invalid entries (§4.5).
type UserCodeEntered struct {
	base
	Keypad      int
	User        int // -1 when invalid
	EnteredCode string
}

// KeypadAreas decodes KA: keypad-to-area assignments.
type KeypadAreas struct {
	base
	Area [16]int
}

// KeypadKeyChange decodes KC: a keypad's last function-key state change.
type KeypadKeyChange struct {
	base
	Keypad int
	Key    byte
}

// EntryExitTimer decodes EE: an area's entry/exit timer update.
type EntryExitTimer struct {
	base
	Area        int
	Timer1      int
	Timer2      int
	IsExit      bool
	ArmedStatus ArmedStatus
}

// AlarmMemory decodes AM: which areas have alarm memory set.
type AlarmMemory struct {
	base
	Area [8]bool
}

// InstallerExit decodes IE: the installer left programming mode. This
// also triggers a fresh sync per §4.6.
type InstallerExit struct {
	base
}

// RealTimeClock decodes both RR and XK, which the Open Question in §9
// directs implementers to treat identically: both reset the heartbeat
// and update the panel's real-time clock string.
type RealTimeClock struct {
	base
	ClockString string
}

// CounterValue decodes CV: a single counter's current value.
type CounterValue struct {
	base
	Counter int // base-0
	Value   int
}

// OutputStatus decodes CC: a single output's on/off state change.
type OutputStatus struct {
	base
	Output int // base-0
	On     bool
}

// OutputBank decodes CS: the on/off state of all 208 outputs.
type OutputBank struct {
	base
	On [208]bool
}

// TaskChange decodes TC: a task was activated.
type TaskChange struct {
	base
	Task int // base-0
}

// decoders maps each recognized Code to its payload decoder. Unlisted
// codes fall back to Unknown in Decode.
var decoders = map[Code]func(payload string) (Message, error){
	CodeAS: decodeAS,
	CodeAZ: decodeAZ,
	CodeZC: decodeZC,
	CodeZS: decodeZS,
	CodeZD: decodeZD,
	CodeZP: decodeZP,
	CodeZV: decodeZV,
	CodeZB: decodeZB,
	CodeLW: decodeLW,
	CodeST: decodeST,
	CodeCR: decodeCR,
	CodeKF: decodeKF,
	CodeLD: decodeLD,
	CodeSD: decodeSD,
	CodeUA: decodeUA,
	CodePC: decodePC,
	CodePS: decodePS,
	CodeTR: decodeTR,
	CodeVN: decodeVN,
	CodeRP: decodeRP,
	CodeSS: decodeSS,
	CodeIC: decodeIC,
	CodeKA: decodeKA,
	CodeKC: decodeKC,
	CodeEE: decodeEE,
	CodeAM: decodeAM,
	CodeIE: decodeIE,
	CodeRR: decodeRR,
	CodeXK: decodeXK,
	CodeCV: decodeCV,
	CodeCC: decodeCC,
	CodeCS: decodeCS,
	CodeTC: decodeTC,
}

// Decode validates the frame and dispatches to its decoder. A non-frame
// line that matches a login banner is never passed here — callers should
// try MatchLoginBanner first (§4.1).
func Decode(line string) (Message, error) {
	f, err := ValidateFrame(line)
	if err != nil {
		return nil, err
	}

	dec, ok := decoders[f.Code]
	if !ok {
		return Unknown{base: base{Code(EventUnknown)}, MsgCode: f.Code, Data: f.Payload}, nil
	}

	msg, err := dec(f.Payload)
	if err != nil {
		return nil, &DecodeError{Code: f.Code, Err: err}
	}
	return msg, nil
}

func atoi(s string) (int, error) { return strconv.Atoi(s) }

func decodeAS(p string) (Message, error) {
	if len(p) < 24 {
		return nil, ErrMalformed
	}
	var m ArmingStatus
	m.code = CodeAS
	for i := 0; i < 8; i++ {
		m.Armed[i] = ArmedStatus(p[i])
		m.ArmUp[i] = ArmUpState(p[8+i])
		m.Alarm[i] = AlarmState(p[16+i])
	}
	return m, nil
}

func decodeAZ(p string) (Message, error) {
	if len(p) < 208 {
		return nil, ErrMalformed
	}
	var m AlarmByZone
	m.code = CodeAZ
	copy(m.Zone[:], p[:208])
	return m, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, ErrMalformed
	}
}

func decodeZC(p string) (Message, error) {
	if len(p) < 4 {
		return nil, ErrMalformed
	}
	wireZone, err := atoi(p[0:3])
	if err != nil {
		return nil, err
	}
	nibble, err := hexNibble(p[3])
	if err != nil {
		return nil, err
	}
	logical, physical := SplitZoneStatus(nibble)
	return ZoneChange{base: base{CodeZC}, Zone: wireZone - 1, Logical: logical, Physical: physical}, nil
}

func decodeZS(p string) (Message, error) {
	if len(p) < 208 {
		return nil, ErrMalformed
	}
	var m ZoneStatuses
	m.code = CodeZS
	for i := 0; i < 208; i++ {
		n, err := hexNibble(p[i])
		if err != nil {
			return nil, err
		}
		m.Logical[i], m.Physical[i] = SplitZoneStatus(n)
	}
	return m, nil
}

func decodeZD(p string) (Message, error) {
	if len(p) < 208 {
		return nil, ErrMalformed
	}
	var m ZoneDefinitions
	m.code = CodeZD
	for i := 0; i < 208; i++ {
		m.Definition[i] = ZoneType(p[i] - 0x30)
	}
	return m, nil
}

func decodeZP(p string) (Message, error) {
	if len(p) < 208 {
		return nil, ErrMalformed
	}
	var m ZonePartitions
	m.code = CodeZP
	for i := 0; i < 208; i++ {
		m.Area[i] = int(p[i]-'0') - 1
	}
	return m, nil
}

func decodeZV(p string) (Message, error) {
	if len(p) < 6 {
		return nil, ErrMalformed
	}
	wireZone, err := atoi(p[0:3])
	if err != nil {
		return nil, err
	}
	volts, err := atoi(p[3:6])
	if err != nil {
		return nil, err
	}
	return ZoneVoltage{base: base{CodeZV}, Zone: wireZone - 1, Voltage: volts}, nil
}

func decodeZB(p string) (Message, error) {
	if len(p) < 4 {
		return nil, ErrMalformed
	}
	wireZone, err := atoi(p[0:3])
	if err != nil {
		return nil, err
	}
	bypassed := p[3] != '0'
	if wireZone == 0 || wireZone == 999 {
		return ZoneBypass{base: base{CodeZB}, All: true, Bypassed: bypassed}, nil
	}
	return ZoneBypass{base: base{CodeZB}, Zone: wireZone - 1, Bypassed: bypassed}, nil
}

func decodeLW(p string) (Message, error) {
	if len(p) < 32 {
		return nil, ErrMalformed
	}
	var m Temperatures
	m.code = CodeLW
	for i := 0; i < 16; i++ {
		kp, err := atoi(p[i*2 : i*2+2])
		if err != nil {
			return nil, err
		}
		m.Keypad[i] = kp - 40
	}
	for i := 0; i < 16; i++ {
		zn, err := atoi(p[32+i*2 : 32+i*2+2])
		if err != nil {
			return nil, err
		}
		m.Zone[i] = zn - 60
	}
	return m, nil
}

func decodeST(p string) (Message, error) {
	if len(p) < 4 {
		return nil, ErrMalformed
	}
	group := TempGroup(p[0] - '0')
	index, err := atoi(p[1:3])
	if err != nil {
		return nil, err
	}
	raw, err := atoi(p[3:6])
	if err != nil {
		return nil, err
	}
	temp := raw
	switch group {
	case TempGroupKeypad:
		temp = raw - 40
	case TempGroupZone:
		temp = raw - 60
	case TempGroupThermostat:
		// raw value used as-is
	}
	return SingleTemp{base: base{CodeST}, Group: group, Index: index - 1, Temp: temp}, nil
}

func decodeCR(p string) (Message, error) {
	if len(p) < 2 {
		return nil, ErrMalformed
	}
	idxField := p[0:2]
	if idxField == "00" && len(p) >= 2+20*5 {
		var m CustomValue
		m.code = CodeCR
		m.All = true
		for i := 0; i < 20; i++ {
			seg := p[2+i*5 : 2+i*5+5]
			v, err := atoi(seg[0:4])
			if err != nil {
				return nil, err
			}
			f, err := atoi(seg[4:5])
			if err != nil {
				return nil, err
			}
			m.Values[i] = CustomSetting{Format: SettingFormat(f), Value: v}
		}
		return m, nil
	}
	if len(p) < 7 {
		return nil, ErrMalformed
	}
	idx, err := atoi(idxField)
	if err != nil {
		return nil, err
	}
	v, err := atoi(p[2:6])
	if err != nil {
		return nil, err
	}
	f, err := atoi(p[6:7])
	if err != nil {
		return nil, err
	}
	var m CustomValue
	m.code = CodeCR
	m.Index = idx - 1
	m.Values[0] = CustomSetting{Format: SettingFormat(f), Value: v}
	return m, nil
}

func decodeKF(p string) (Message, error) {
	if len(p) < 11 {
		return nil, ErrMalformed
	}
	kp, err := atoi(p[0:2])
	if err != nil {
		return nil, err
	}
	var m KeypadFunction
	m.code = CodeKF
	m.Keypad = kp - 1
	m.Key = p[2]
	for i := 0; i < 8; i++ {
		m.ChimeMode[i] = ChimeMode(p[3+i])
	}
	return m, nil
}

func decodeLD(p string) (Message, error) {
	// event(2) finer(2) area(1) hour(2) minute(2) month(2) day(2) dow(1) year(2) index(2)
	if len(p) < 18 {
		return nil, ErrMalformed
	}
	evt, _ := atoi(p[0:2])
	data, _ := atoi(p[2:4])
	area, _ := atoi(p[4:5])
	hour, _ := atoi(p[5:7])
	minute, _ := atoi(p[7:9])
	month, _ := atoi(p[9:11])
	day, _ := atoi(p[11:13])
	year, _ := atoi(p[14:16])
	idx, _ := atoi(p[16:18])

	ts := time.Date(2000+year, time.Month(month), day, hour, minute, 0, 0, time.Local).UTC()

	return LogEntry{
		base:      base{CodeLD},
		Index:     idx,
		EventType: evt,
		EventData: data,
		Area:      area - 1,
		Timestamp: ts,
	}, nil
}

func decodeSD(p string) (Message, error) {
	if len(p) < 5 {
		return nil, ErrMalformed
	}
	descType, err := atoi(p[0:2])
	if err != nil {
		return nil, err
	}
	unit, err := atoi(p[2:5])
	if err != nil {
		return nil, err
	}
	rest := p[5:]
	if len(rest) > 16 {
		// Description text is fixed at 16 characters; anything past that
		// is the trailing reserved field, not part of the name.
		rest = rest[:16]
	}
	show := false
	if len(rest) > 0 {
		show = rest[0]&0x80 != 0
		b := []byte(rest)
		b[0] &^= 0x80
		rest = string(b)
	}
	name := trimTrailingSpace(rest)
	return Description{base: base{CodeSD}, DescType: descType, Unit: unit - 1, Name: name, ShowOnKeypad: show}, nil
}

func trimTrailingSpace(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == ' ' {
		i--
	}
	return s[:i]
}

func decodeUA(p string) (Message, error) {
	// user_code(6) valid_areas(2 hex) diagnostic(8) code_length(1) code_type(1) temp_units(1)
	if len(p) < 19 {
		return nil, ErrMalformed
	}
	user, err := atoi(p[0:6])
	if err != nil {
		return nil, err
	}
	hi, err := hexNibble(p[6])
	if err != nil {
		return nil, err
	}
	lo, err := hexNibble(p[7])
	if err != nil {
		return nil, err
	}
	areas := hi<<4 | lo

	var m UserAreas
	m.code = CodeUA
	m.User = user
	for i := 0; i < 8; i++ {
		m.Areas[i] = areas&(1<<uint(i)) != 0
	}
	cl, err := atoi(p[16:17])
	if err != nil {
		return nil, err
	}
	m.CodeLength = cl
	tu, err := atoi(p[18:19])
	if err != nil {
		return nil, err
	}
	m.TempUnits = TempUnits(tu)
	return m, nil
}

func decodePC(p string) (Message, error) {
	if len(p) < 7 {
		return nil, ErrMalformed
	}
	idx, err := HousecodeToIndex(p[0:3])
	if err != nil {
		idx2, err2 := atoi(p[0:3])
		if err2 != nil {
			return nil, err
		}
		idx = idx2 - 1
	}
	status, err := atoi(p[3:6])
	if err != nil {
		return nil, err
	}
	return LightStatus{base: base{CodePC}, Index: idx, Status: status}, nil
}

func decodePS(p string) (Message, error) {
	if len(p) < 1+64 {
		return nil, ErrMalformed
	}
	bank, err := atoi(p[0:1])
	if err != nil {
		return nil, err
	}
	var m LightBank
	m.code = CodePS
	m.Bank = bank
	for i := 0; i < 64; i++ {
		n, err := hexNibbleOrDigit(p[1+i])
		if err != nil {
			return nil, err
		}
		m.Status[i] = int(n)
	}
	return m, nil
}

func hexNibbleOrDigit(c byte) (byte, error) {
	return hexNibble(c)
}

func decodeTR(p string) (Message, error) {
	if len(p) < 14 {
		return nil, ErrMalformed
	}
	idx, err := atoi(p[0:2])
	if err != nil {
		return nil, err
	}
	mode, _ := atoi(p[2:3])
	hold := p[3] != '0'
	fan, _ := atoi(p[4:5])
	cur, _ := atoi(p[5:7])
	heat, _ := atoi(p[7:9])
	cool, _ := atoi(p[9:11])
	hum, _ := atoi(p[11:13])

	return ThermostatReport{
		base:         base{CodeTR},
		Index:        idx - 1,
		Mode:         ThermostatMode(mode),
		Hold:         hold,
		Fan:          ThermostatFan(fan),
		CurrentTemp:  cur,
		HeatSetpoint: heat,
		CoolSetpoint: cool,
		Humidity:     hum,
	}, nil
}

func decodeVN(p string) (Message, error) {
	if len(p) < 6 {
		return nil, ErrMalformed
	}
	return Version{base: base{CodeVN}, MainFirmware: p[0:3], XEPFirmware: p[3:6]}, nil
}

func decodeRP(p string) (Message, error) {
	if len(p) < 1 {
		return nil, ErrMalformed
	}
	n, err := atoi(p[0:1])
	if err != nil {
		return nil, err
	}
	return RemoteProgramming{base: base{CodeRP}, Status: RPStatus(n)}, nil
}

func decodeSS(p string) (Message, error) {
	if len(p) < 34 {
		return nil, ErrMalformed
	}
	return SystemTrouble{base: base{CodeSS}, Raw: p[:34], Troubles: DecodeTroubleString(p[:34])}, nil
}

func decodeIC(p string) (Message, error) {
	if len(p) < 9 {
		return nil, ErrMalformed
	}
	kp, err := atoi(p[0:2])
	if err != nil {
		return nil, err
	}
	user, err := atoi(p[2:5])
	if err != nil {
		return nil, err
	}
	code := p[5:9]
	u := UserCodeEntered{base: base{CodeIC}, Keypad: kp - 1}
	if user > 0 {
		u.User = user - 1
		u.EnteredCode = "****"
	} else {
		u.User = -1
		u.EnteredCode = code
	}
	return u, nil
}

func decodeKA(p string) (Message, error) {
	if len(p) < 16 {
		return nil, ErrMalformed
	}
	var m KeypadAreas
	m.code = CodeKA
	for i := 0; i < 16; i++ {
		m.Area[i] = int(p[i]-'0') - 1
	}
	return m, nil
}

func decodeKC(p string) (Message, error) {
	if len(p) < 3 {
		return nil, ErrMalformed
	}
	kp, err := atoi(p[0:2])
	if err != nil {
		return nil, err
	}
	return KeypadKeyChange{base: base{CodeKC}, Keypad: kp - 1, Key: p[2]}, nil
}

func decodeEE(p string) (Message, error) {
	if len(p) < 9 {
		return nil, ErrMalformed
	}
	area, err := atoi(p[0:1])
	if err != nil {
		return nil, err
	}
	isExit := p[1] == '0'
	t1, _ := atoi(p[2:5])
	t2, _ := atoi(p[5:8])
	return EntryExitTimer{
		base:        base{CodeEE},
		Area:        area - 1,
		IsExit:      isExit,
		Timer1:      t1,
		Timer2:      t2,
		ArmedStatus: ArmedStatus(p[8]),
	}, nil
}

func decodeAM(p string) (Message, error) {
	if len(p) < 8 {
		return nil, ErrMalformed
	}
	var m AlarmMemory
	m.code = CodeAM
	for i := 0; i < 8; i++ {
		m.Area[i] = p[i] != '0'
	}
	return m, nil
}

func decodeIE(p string) (Message, error) {
	return InstallerExit{base: base{CodeIE}}, nil
}

func decodeRR(p string) (Message, error) {
	return RealTimeClock{base: base{CodeRR}, ClockString: p}, nil
}

func decodeXK(p string) (Message, error) {
	return RealTimeClock{base: base{CodeXK}, ClockString: p}, nil
}

func decodeCV(p string) (Message, error) {
	if len(p) < 7 {
		return nil, ErrMalformed
	}
	idx, err := atoi(p[0:2])
	if err != nil {
		return nil, err
	}
	v, err := atoi(p[2:7])
	if err != nil {
		return nil, err
	}
	return CounterValue{base: base{CodeCV}, Counter: idx - 1, Value: v}, nil
}

func decodeCC(p string) (Message, error) {
	if len(p) < 4 {
		return nil, ErrMalformed
	}
	idx, err := atoi(p[0:3])
	if err != nil {
		return nil, err
	}
	return OutputStatus{base: base{CodeCC}, Output: idx - 1, On: p[3] == '1'}, nil
}

func decodeCS(p string) (Message, error) {
	if len(p) < 208 {
		return nil, ErrMalformed
	}
	var m OutputBank
	m.code = CodeCS
	for i := 0; i < 208; i++ {
		m.On[i] = p[i] == '1'
	}
	return m, nil
}

func decodeTC(p string) (Message, error) {
	if len(p) < 3 {
		return nil, ErrMalformed
	}
	idx, err := atoi(p[0:3])
	if err != nil {
		return nil, err
	}
	return TaskChange{base: base{CodeTC}, Task: idx - 1}, nil
}
