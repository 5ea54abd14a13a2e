package store

import (
	"encoding/json"
	"fmt"

	"broadcast-mode/internal/model"

	"go.uber.org/zap"
)

// Storage keys. These must stay stable across releases.
const (
	KeySettings      = "broadcast-mode:settings"
	KeyBootEnabled   = "broadcastMode_boot_enabled"      // local; "0" disables
	KeyBootedSession = "broadcastMode_booted_session_v1" // session; "1" once shown
	KeyTickerSession = "broadcastMode_ticker_msgs_v1"    // session; JSON list
)

// RecordState describes what was found under a persisted key.
type RecordState int

const (
	RecordAbsent RecordState = iota
	RecordInvalid
	RecordOK
)

// Prefs is the typed repository over local + session storage. All storage
// failures are logged here; callers receive the error to pick a fallback.
type Prefs struct {
	Local   KV
	Session KV
	Log     *zap.Logger
}

func (p Prefs) log() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

func (p Prefs) get(kv KV, key string) (string, bool, error) {
	if kv == nil {
		return "", false, ErrUnavailable
	}
	v, ok, err := kv.Get(key)
	if err != nil {
		p.log().Warn("storage read failed", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return v, ok, nil
}

func (p Prefs) set(kv KV, key, value string) error {
	if kv == nil {
		return ErrUnavailable
	}
	if err := kv.Set(key, value); err != nil {
		p.log().Warn("storage write failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// ReadSettings loads the persisted settings record. Every field must be present
// and well-typed; anything else is RecordInvalid.
func (p Prefs) ReadSettings() (model.Settings, RecordState, error) {
	raw, ok, err := p.get(p.Local, KeySettings)
	if err != nil {
		return model.Settings{}, RecordAbsent, err
	}
	if !ok || raw == "" {
		return model.Settings{}, RecordAbsent, nil
	}
	st, valid := decodeSettings(raw)
	if !valid {
		p.log().Debug("discarding malformed settings record", zap.String("raw", raw))
		return model.Settings{}, RecordInvalid, nil
	}
	return st, RecordOK, nil
}

func decodeSettings(raw string) (model.Settings, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return model.Settings{}, false
	}
	var out model.Settings
	if err := decodeStrict(fields["vhsEnabled"], &out.VhsEnabled); err != nil {
		return model.Settings{}, false
	}
	if err := decodeStrict(fields["reducedMotion"], &out.ReducedMotion); err != nil {
		return model.Settings{}, false
	}
	var intensity string
	if err := decodeStrict(fields["vhsIntensity"], &intensity); err != nil {
		return model.Settings{}, false
	}
	out.VhsIntensity = model.VhsIntensity(intensity)
	if !out.VhsIntensity.Valid() {
		return model.Settings{}, false
	}
	return out, true
}

func decodeStrict(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("missing field")
	}
	return json.Unmarshal(raw, dst)
}

func (p Prefs) WriteSettings(st model.Settings) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return p.set(p.Local, KeySettings, string(b))
}

// BootEnabled reports the persisted boot toggle (default true).
func (p Prefs) BootEnabled() (bool, error) {
	v, _, err := p.get(p.Local, KeyBootEnabled)
	if err != nil {
		return true, err
	}
	return v != "0", nil
}

func (p Prefs) SetBootEnabled(enabled bool) error {
	if enabled {
		if p.Local == nil {
			return ErrUnavailable
		}
		if err := p.Local.Remove(KeyBootEnabled); err != nil {
			p.log().Warn("storage write failed", zap.String("key", KeyBootEnabled), zap.Error(err))
			return err
		}
		return nil
	}
	return p.set(p.Local, KeyBootEnabled, "0")
}

func (p Prefs) BootedThisSession() (bool, error) {
	v, _, err := p.get(p.Session, KeyBootedSession)
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

func (p Prefs) MarkBooted() error {
	return p.set(p.Session, KeyBootedSession, "1")
}

// TickerMessages returns the cached per-session ticker selection, if any.
func (p Prefs) TickerMessages() ([]model.TickerMessage, bool) {
	raw, ok, err := p.get(p.Session, KeyTickerSession)
	if err != nil || !ok {
		return nil, false
	}
	var msgs []model.TickerMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil || len(msgs) == 0 {
		return nil, false
	}
	return msgs, true
}

func (p Prefs) SetTickerMessages(msgs []model.TickerMessage) error {
	b, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return p.set(p.Session, KeyTickerSession, string(b))
}
