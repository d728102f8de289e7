package bot

import (
	"fmt"

	"github.com/iamasit07/connect4-agent/internal/domain"
)

// Weights drives the static evaluation. Own terms are added, Opp terms are
// subtracted, so every field is a non-negative magnitude.
type Weights struct {
	Center    int `yaml:"center" json:"center"`         // per own piece in the centre column
	OppCenter int `yaml:"opp_center" json:"opp_center"` // per opponent piece in the centre column
	Four      int `yaml:"four" json:"four"`
	Three     int `yaml:"three" json:"three"` // 3 own + 1 empty
	Two       int `yaml:"two" json:"two"`     // 2 own + 2 empty
	OppFour   int `yaml:"opp_four" json:"opp_four"`
	OppThree  int `yaml:"opp_three" json:"opp_three"` // 3 opponent + 1 empty
	OppTwo    int `yaml:"opp_two" json:"opp_two"`     // 2 opponent + 2 empty
}

var (
	DefaultWeights = Weights{
		Center:   3,
		Four:     100,
		Three:    5,
		Two:      2,
		OppFour:  100,
		OppThree: 8,
	}

	// DefensiveWeights also punishes the opponent's open twos and centre pieces.
	DefensiveWeights = Weights{
		Center:    4,
		OppCenter: 2,
		Four:      100,
		Three:     5,
		Two:       2,
		OppFour:   100,
		OppThree:  12,
		OppTwo:    1,
	}

	PositionalWeights = Weights{
		Center:   6,
		Four:     100,
		Three:    4,
		Two:      2,
		OppFour:  100,
		OppThree: 6,
	}
)

const (
	PresetDefault    = "default"
	PresetDefensive  = "defensive"
	PresetPositional = "positional"
)

var presets = map[string]Weights{
	PresetDefault:    DefaultWeights,
	PresetDefensive:  DefensiveWeights,
	PresetPositional: PositionalWeights,
}

func PresetByName(name string) (Weights, error) {
	if name == "" {
		return DefaultWeights, nil
	}
	w, ok := presets[name]
	if !ok {
		return Weights{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidWeights, name)
	}
	return w, nil
}

// Validate enforces the ordering the search relies on:
// own four > own three > own two > 0, and blocking an opponent three is
// worth more than building an own three.
func (w Weights) Validate() error {
	switch {
	case w.Center < 0 || w.OppCenter < 0 || w.OppFour < 0 || w.OppTwo < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidWeights)
	case !(w.Four > w.Three && w.Three > w.Two && w.Two > 0):
		return fmt.Errorf("%w: need four > three > two > 0, got %d/%d/%d", ErrInvalidWeights, w.Four, w.Three, w.Two)
	case w.OppThree <= w.Three:
		return fmt.Errorf("%w: opp_three (%d) must exceed three (%d)", ErrInvalidWeights, w.OppThree, w.Three)
	case w.OppTwo >= w.OppThree:
		return fmt.Errorf("%w: opp_two (%d) must stay below opp_three (%d)", ErrInvalidWeights, w.OppTwo, w.OppThree)
	}
	return nil
}

// Evaluate scores a position for player by summing a centre-column bonus
// and a contribution from every window of ToWin cells. Overlapping windows
// in the same orientation are scored separately.
func Evaluate(b *domain.Board, player domain.PlayerID, w Weights) int {
	const offset = domain.ToWin - 1

	rows, cols := b.Rows(), b.Columns()
	opponent := domain.Opponent(player)
	score := 0

	center := cols / 2
	for row := 0; row < rows; row++ {
		switch b.At(row, center) {
		case player:
			score += w.Center
		case opponent:
			score -= w.OppCenter
		}
	}

	var window [domain.ToWin]domain.PlayerID

	// horizontal
	for row := 0; row < rows; row++ {
		for col := 0; col < cols-offset; col++ {
			for i := range window {
				window[i] = b.At(row, col+i)
			}
			score += scoreWindow(window, player, opponent, w)
		}
	}

	// vertical
	for col := 0; col < cols; col++ {
		for row := 0; row < rows-offset; row++ {
			for i := range window {
				window[i] = b.At(row+i, col)
			}
			score += scoreWindow(window, player, opponent, w)
		}
	}

	// diagonal \
	for row := 0; row < rows-offset; row++ {
		for col := 0; col < cols-offset; col++ {
			for i := range window {
				window[i] = b.At(row+i, col+i)
			}
			score += scoreWindow(window, player, opponent, w)
		}
	}

	// diagonal /
	for row := 0; row < rows-offset; row++ {
		for col := offset; col < cols; col++ {
			for i := range window {
				window[i] = b.At(row+i, col-i)
			}
			score += scoreWindow(window, player, opponent, w)
		}
	}

	return score
}

func scoreWindow(window [domain.ToWin]domain.PlayerID, player, opponent domain.PlayerID, w Weights) int {
	own, opp, empty := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case player:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	switch {
	case own == 4:
		return w.Four
	case own == 3 && empty == 1:
		return w.Three
	case own == 2 && empty == 2:
		return w.Two
	case opp == 4:
		return -w.OppFour
	case opp == 3 && empty == 1:
		return -w.OppThree
	case opp == 2 && empty == 2:
		return -w.OppTwo
	}
	return 0
}
