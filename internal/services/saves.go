package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"marketsim/internal/models"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 9
	maxCodeAttempts = 100
)

var (
	ErrCodeNotFound   = errors.New("save code not found")
	ErrPresetNotFound = errors.New("preset not found")
	ErrCodeExhausted  = errors.New("could not allocate a unique save code")
)

// Preset is one named snapshot slot as returned to callers. The snapshot
// bytes are the closed-schema JSON document produced by the session package.
type Preset struct {
	Name      string    `json:"name"`
	Snapshot  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveState is a save code's full listing.
type SaveState struct {
	Code         string   `json:"code"`
	ActivePreset string   `json:"active_preset"`
	Presets      []Preset `json:"presets"`
}

type memorySave struct {
	activePreset string
	presets      map[string]*Preset
}

// SaveStore manages anonymous save codes and their preset slots. Codes are
// capability tokens: holding one grants full access to its presets, there is
// no tie to user accounts.
type SaveStore struct {
	db  *gorm.DB
	rng *rand.Rand

	mu    sync.Mutex
	saves map[string]*memorySave
}

// NewSaveStore creates a store backed by db, or by memory when db is nil.
func NewSaveStore(db *gorm.DB) *SaveStore {
	return &SaveStore{
		db:    db,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		saves: make(map[string]*memorySave),
	}
}

// CreateCode allocates a fresh save code. Gives up after a bounded number of
// collision retries rather than looping forever on a full keyspace.
func (s *SaveStore) CreateCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.randomCode()
		taken, err := s.codeExists(code)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}
		if err := s.insertCode(code); err != nil {
			return "", err
		}
		log.Info().Str("code", code).Msg("save code created")
		return code, nil
	}
	return "", ErrCodeExhausted
}

// PutPreset writes (or overwrites) the named slot under code and marks it as
// the active preset.
func (s *SaveStore) PutPreset(code, name string, snapshot []byte) error {
	code = normalizeCode(code)
	if name == "" {
		return fmt.Errorf("preset name is required")
	}

	if s.db != nil {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var record models.SaveRecord
			if err := tx.Where("code = ?", code).First(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCodeNotFound
				}
				return fmt.Errorf("failed to load save record: %w", err)
			}

			var slot models.PresetSlot
			err := tx.Where("code = ? AND name = ?", code, name).First(&slot).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				slot = models.PresetSlot{Code: code, Name: name, Snapshot: snapshot}
				if err := tx.Create(&slot).Error; err != nil {
					return fmt.Errorf("failed to create preset: %w", err)
				}
			case err != nil:
				return fmt.Errorf("failed to load preset: %w", err)
			default:
				if err := tx.Model(&slot).Update("snapshot", snapshot).Error; err != nil {
					return fmt.Errorf("failed to update preset: %w", err)
				}
			}

			return tx.Model(&record).Update("active_preset", name).Error
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	save, ok := s.saves[code]
	if !ok {
		return ErrCodeNotFound
	}
	now := time.Now().UTC()
	created := now
	if existing, ok := save.presets[name]; ok {
		created = existing.CreatedAt
	}
	save.presets[name] = &Preset{Name: name, Snapshot: snapshot, CreatedAt: created, UpdatedAt: now}
	save.activePreset = name
	return nil
}

// GetPreset returns the named slot's snapshot bytes.
func (s *SaveStore) GetPreset(code, name string) ([]byte, error) {
	code = normalizeCode(code)
	if s.db != nil {
		if _, err := s.record(code); err != nil {
			return nil, err
		}
		var slot models.PresetSlot
		err := s.db.Where("code = ? AND name = ?", code, name).First(&slot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresetNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load preset: %w", err)
		}
		return slot.Snapshot, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	save, ok := s.saves[code]
	if !ok {
		return nil, ErrCodeNotFound
	}
	preset, ok := save.presets[name]
	if !ok {
		return nil, ErrPresetNotFound
	}
	return preset.Snapshot, nil
}

// Get returns the save code's listing: active preset plus every slot, sorted
// by name.
func (s *SaveStore) Get(code string) (*SaveState, error) {
	code = normalizeCode(code)
	if s.db != nil {
		record, err := s.record(code)
		if err != nil {
			return nil, err
		}
		var slots []models.PresetSlot
		if err := s.db.Where("code = ?", code).Order("name").Find(&slots).Error; err != nil {
			return nil, fmt.Errorf("failed to list presets: %w", err)
		}
		state := &SaveState{Code: code, ActivePreset: record.ActivePreset}
		for _, slot := range slots {
			state.Presets = append(state.Presets, Preset{Name: slot.Name, Snapshot: slot.Snapshot, CreatedAt: slot.CreatedAt, UpdatedAt: slot.UpdatedAt})
		}
		return state, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	save, ok := s.saves[code]
	if !ok {
		return nil, ErrCodeNotFound
	}
	state := &SaveState{Code: code, ActivePreset: save.activePreset}
	for _, preset := range save.presets {
		state.Presets = append(state.Presets, *preset)
	}
	sort.Slice(state.Presets, func(i, j int) bool { return state.Presets[i].Name < state.Presets[j].Name })
	return state, nil
}

// DeletePreset removes the named slot. Deleting the active preset promotes
// the lexicographically smallest remaining slot; deleting the last slot
// clears the active preset. Deleting a missing slot returns
// ErrPresetNotFound and changes nothing.
func (s *SaveStore) DeletePreset(code, name string) error {
	code = normalizeCode(code)
	if s.db != nil {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var record models.SaveRecord
			if err := tx.Where("code = ?", code).First(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCodeNotFound
				}
				return fmt.Errorf("failed to load save record: %w", err)
			}

			res := tx.Where("code = ? AND name = ?", code, name).Delete(&models.PresetSlot{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete preset: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrPresetNotFound
			}

			if record.ActivePreset != name {
				return nil
			}
			var next models.PresetSlot
			err := tx.Where("code = ?", code).Order("name").First(&next).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return tx.Model(&record).Update("active_preset", "").Error
			case err != nil:
				return fmt.Errorf("failed to pick next active preset: %w", err)
			default:
				return tx.Model(&record).Update("active_preset", next.Name).Error
			}
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	save, ok := s.saves[code]
	if !ok {
		return ErrCodeNotFound
	}
	if _, ok := save.presets[name]; !ok {
		return ErrPresetNotFound
	}
	delete(save.presets, name)
	if save.activePreset != name {
		return nil
	}
	save.activePreset = ""
	names := make([]string, 0, len(save.presets))
	for n := range save.presets {
		names = append(names, n)
	}
	if len(names) > 0 {
		sort.Strings(names)
		save.activePreset = names[0]
	}
	return nil
}

func (s *SaveStore) record(code string) (*models.SaveRecord, error) {
	var record models.SaveRecord
	err := s.db.Where("code = ?", code).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load save record: %w", err)
	}
	return &record, nil
}

func (s *SaveStore) codeExists(code string) (bool, error) {
	if s.db != nil {
		var count int64
		if err := s.db.Model(&models.SaveRecord{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return false, fmt.Errorf("failed to check save code: %w", err)
		}
		return count > 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saves[code]
	return ok, nil
}

func (s *SaveStore) insertCode(code string) error {
	if s.db != nil {
		if err := s.db.Create(&models.SaveRecord{Code: code}).Error; err != nil {
			return fmt.Errorf("failed to create save record: %w", err)
		}
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[code] = &memorySave{presets: make(map[string]*Preset)}
	return nil
}

// normalizeCode uppercases a code for lookup; codes are stored uppercase.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *SaveStore) randomCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[s.rng.Intn(len(codeAlphabet))]
	}
	return string(buf)
}
