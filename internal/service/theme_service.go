package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/store"
)

const (
	primaryColorKey   = "theme_primary_color"
	secondaryColorKey = "theme_secondary_color"
)

type Theme struct {
	PrimaryColor   string `json:"primary_color"   validate:"required,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"required,hexcolor"`
}

type ThemePreset struct {
	Name string `json:"name"`
	Theme
}

func DefaultTheme() Theme {
	return Theme{PrimaryColor: "#9b87f5", SecondaryColor: "#7E69AB"}
}

var themePresets = []ThemePreset{
	{"Фиолетовый", DefaultTheme()},
	{"Синий", Theme{"#3b82f6", "#1e40af"}},
	{"Зелёный", Theme{"#22c55e", "#15803d"}},
	{"Красный", Theme{"#ef4444", "#b91c1c"}},
	{"Оранжевый", Theme{"#f97316", "#c2410c"}},
	{"Розовый", Theme{"#ec4899", "#be185d"}},
	{"Бирюзовый", Theme{"#14b8a6", "#0d9488"}},
	{"Жёлтый", Theme{"#eab308", "#a16207"}},
}

type SettingStore interface {
	Get(context.Context, string) (string, error)
	SetMany(context.Context, map[string]string) error
	Remove(context.Context, ...string) error
}

type ThemeService struct {
	settingStore SettingStore
}

func NewThemeService(s SettingStore) *ThemeService {
	return &ThemeService{settingStore: s}
}

func (s *ThemeService) Presets() []ThemePreset {
	presets := make([]ThemePreset, len(themePresets))
	copy(presets, themePresets)
	return presets
}

// GetTheme returns the stored site colors, falling back to the defaults for
// any color never set.
func (s *ThemeService) GetTheme(ctx context.Context) (*Theme, error) {
	t := DefaultTheme()
	for key, target := range map[string]*string{
		primaryColorKey:   &t.PrimaryColor,
		secondaryColorKey: &t.SecondaryColor,
	} {
		value, err := s.settingStore.Get(ctx, key)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		*target = value
	}
	return &t, nil
}

// UpdateTheme stores both colors. Only the super admin may change them.
func (s *ThemeService) UpdateTheme(
	ctx context.Context,
	actor *store.Account,
	t Theme,
) (*Theme, error) {
	if err := access.Authorize(SubjectOf(actor), access.ChangeTheme); err != nil {
		return nil, err
	}
	t.PrimaryColor = strings.TrimSpace(t.PrimaryColor)
	t.SecondaryColor = strings.TrimSpace(t.SecondaryColor)
	if err := validateStruct(t); err != nil {
		return nil, err
	}
	if err := s.settingStore.SetMany(ctx, map[string]string{
		primaryColorKey:   t.PrimaryColor,
		secondaryColorKey: t.SecondaryColor,
	}); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *ThemeService) ResetTheme(ctx context.Context, actor *store.Account) (*Theme, error) {
	if err := access.Authorize(SubjectOf(actor), access.ChangeTheme); err != nil {
		return nil, err
	}
	if err := s.settingStore.Remove(ctx, primaryColorKey, secondaryColorKey); err != nil {
		return nil, err
	}
	t := DefaultTheme()
	return &t, nil
}
