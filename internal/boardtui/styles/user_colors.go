package styles

import (
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// UserColorPalette is a curated ANSI 256 palette for stable username colors.
// Red and green are left to the status colors.
var UserColorPalette = []string{
	"33", "39", "45", "69", "75", "81", "87", "99",
	"111", "117", "123", "147", "153", "159", "183", "189",
}

// UserColorMapper resolves deterministic per-username styles and caches them.
type UserColorMapper struct {
	palette []string

	mu         sync.RWMutex
	fgCache    map[string]lipgloss.Style
	colorCache map[string]string
}

// NewUserColorMapper returns a mapper using the default palette.
func NewUserColorMapper() *UserColorMapper {
	return NewUserColorMapperWithPalette(nil)
}

// NewUserColorMapperWithPalette returns a mapper over palette, falling back to
// UserColorPalette when it is empty.
func NewUserColorMapperWithPalette(palette []string) *UserColorMapper {
	if len(palette) == 0 {
		palette = UserColorPalette
	}
	return &UserColorMapper{
		palette:    append([]string(nil), palette...),
		fgCache:    make(map[string]lipgloss.Style, 64),
		colorCache: make(map[string]string, 64),
	}
}

// Foreground returns a cached bold foreground style for username.
func (m *UserColorMapper) Foreground(username string) lipgloss.Style {
	key := normalizeUsername(username)

	m.mu.RLock()
	if style, ok := m.fgCache[key]; ok {
		m.mu.RUnlock()
		return style
	}
	m.mu.RUnlock()

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.ColorCode(key))).Bold(true)

	m.mu.Lock()
	m.fgCache[key] = style
	m.mu.Unlock()

	return style
}

// ColorCode returns the ANSI-256 color code selected for username.
func (m *UserColorMapper) ColorCode(username string) string {
	key := normalizeUsername(username)

	m.mu.RLock()
	if colorCode, ok := m.colorCache[key]; ok {
		m.mu.RUnlock()
		return colorCode
	}
	m.mu.RUnlock()

	colorCode := m.palette[hashToPalette(key, len(m.palette))]

	m.mu.Lock()
	m.colorCache[key] = colorCode
	m.mu.Unlock()

	return colorCode
}

// ContrastingText picks black or white text for a background color code.
func ContrastingText(code string) string {
	index, err := strconv.Atoi(code)
	if err != nil {
		return "231"
	}

	r, g, b := ansi256ToRGB(index)
	brightness := (299*r + 587*g + 114*b) / 1000
	if brightness >= 150 {
		return "16"
	}
	return "231"
}

func normalizeUsername(username string) string {
	normalized := strings.ToLower(strings.TrimSpace(username))
	if normalized == "" {
		return "anonymous"
	}
	return normalized
}

func hashToPalette(key string, paletteLen int) int {
	if paletteLen == 0 {
		return 0
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(paletteLen))
}

func ansi256ToRGB(index int) (int, int, int) {
	if index < 0 {
		return 255, 255, 255
	}

	if index < 16 {
		table := [16][3]int{
			{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
			{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
			{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
			{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
		}
		return table[index][0], table[index][1], table[index][2]
	}

	if index <= 231 {
		cube := index - 16
		return channelValue(cube / 36), channelValue((cube / 6) % 6), channelValue(cube % 6)
	}

	if index <= 255 {
		gray := 8 + (index-232)*10
		return gray, gray, gray
	}

	return 255, 255, 255
}

func channelValue(v int) int {
	if v == 0 {
		return 0
	}
	return 55 + v*40
}
