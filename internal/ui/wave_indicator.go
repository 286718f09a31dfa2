// internal/ui/wave_indicator.go
package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
)

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y         float32
	Color        color.Color
	OutlineColor color.Color
}

func NewWaveIndicator(x, y float32) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        config.ButtonHoverColor,
		OutlineColor: color.White,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Label returns "IV / XXX" style text, or an empty string before the first wave.
func Label(wave, total int) string {
	if wave <= 0 {
		return ""
	}
	if total <= 0 {
		return toRoman(wave)
	}
	return fmt.Sprintf("%s / %s", toRoman(wave), toRoman(total))
}

// Draw отрисовывает индикатор. name — название активной волны, может быть пустым.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, wave, total int, name string) {
	label := Label(wave, total)
	if label == "" {
		return
	}
	textColor := i.Color
	if wave%10 == 0 {
		textColor = color.RGBA{220, 40, 40, 255} // босс-волна
	}
	x, y := int(i.X), int(i.Y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				text.Draw(screen, label, face, x+dx, y+dy, i.OutlineColor)
			}
		}
	}
	text.Draw(screen, label, face, x, y, textColor)
	if name != "" {
		text.Draw(screen, name, face, x, y+16, config.TextLightColor)
	}
}
