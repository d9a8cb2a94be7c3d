package screens

import (
	"fmt"
	"strconv"

	"snakeegg/internal/domain"
	"snakeegg/internal/ui/graphics/components"
	"snakeegg/internal/ui/graphics/input"
	"snakeegg/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type ConfigScreen struct {
	ctx types.ScreenContext

	base *domain.GameConfig

	inputWidth  *components.TextInput
	inputHeight *components.TextInput
	inputDelay  *components.TextInput
	inputPitch  *components.TextInput

	btnApply *components.Button
	btnBack  *components.Button

	errorMsg string
}

func NewConfigScreen(ctx types.ScreenContext) *ConfigScreen {
	s := &ConfigScreen{
		ctx:         ctx,
		base:        domain.DefaultGameConfig(),
		inputWidth:  components.NewTextInput(0, 0, 140, 35, "20"),
		inputHeight: components.NewTextInput(0, 0, 140, 35, "20"),
		inputDelay:  components.NewTextInput(0, 0, 140, 35, "150"),
		inputPitch:  components.NewTextInput(0, 0, 140, 35, "20"),
		btnApply:    components.NewButton(0, 0, 140, 45, "Apply"),
		btnBack:     components.NewButton(0, 0, 140, 45, "Back"),
	}

	s.inputWidth.Label = "Width (5-100):"
	s.inputHeight.Label = "Height (5-100):"
	s.inputDelay.Label = "Tick delay ms (30-3000):"
	s.inputPitch.Label = "Cell pitch px (4-60):"

	for _, inp := range s.inputs() {
		inp.Numeric = true
		inp.MaxLength = 4
	}

	s.SetConfig(s.base)

	return s
}

// SetConfig fills the form from cfg. Fields without an input keep cfg's
// values when the form is applied.
func (s *ConfigScreen) SetConfig(cfg *domain.GameConfig) {
	s.base = cfg.Copy()
	s.inputWidth.SetText(strconv.Itoa(cfg.Width))
	s.inputHeight.SetText(strconv.Itoa(cfg.Height))
	s.inputDelay.SetText(strconv.Itoa(cfg.TickDelayMs))
	s.inputPitch.SetText(strconv.Itoa(cfg.CellPitch))
}

func (s *ConfigScreen) inputs() []*components.TextInput {
	return []*components.TextInput{
		s.inputWidth, s.inputHeight,
		s.inputDelay, s.inputPitch,
	}
}

func (s *ConfigScreen) Update() types.UIEvent {
	w, _ := s.ctx.Size()
	centerX := w / 2
	startY := 120

	s.inputWidth.SetPosition(centerX-150, startY)
	s.inputHeight.SetPosition(centerX+10, startY)
	s.inputDelay.SetPosition(centerX-150, startY+70)
	s.inputPitch.SetPosition(centerX+10, startY+70)
	s.btnBack.SetPosition(centerX-150, startY+140)
	s.btnApply.SetPosition(centerX+10, startY+140)

	for _, inp := range s.inputs() {
		inp.Update()
	}

	if input.IsTabPressed() {
		s.cycleFocus()
	}

	if s.btnBack.Update() || input.IsEscapePressed() {
		return types.UIEvent{Type: types.UIEventShowMenu}
	}

	if s.btnApply.Update() || input.IsEnterPressed() {
		return s.apply()
	}

	return types.UIEvent{Type: types.UIEventNone}
}

func (s *ConfigScreen) cycleFocus() {
	inputs := s.inputs()

	currentIdx := -1
	for i, inp := range inputs {
		if inp.Focused {
			currentIdx = i
			inp.Focused = false
			break
		}
	}

	nextIdx := (currentIdx + 1) % len(inputs)
	inputs[nextIdx].Focused = true
}

func (s *ConfigScreen) apply() types.UIEvent {
	cfg, err := s.parse()
	if err != nil {
		s.errorMsg = err.Error()
		return types.UIEvent{Type: types.UIEventNone}
	}

	s.errorMsg = ""
	s.base = cfg.Copy()

	return types.UIEvent{
		Type:    types.UIEventApplyConfig,
		Payload: types.ApplyConfigData{Config: cfg},
	}
}

func (s *ConfigScreen) parse() (*domain.GameConfig, error) {
	cfg := s.base.Copy()

	fields := []struct {
		name  string
		input *components.TextInput
		dst   *int
	}{
		{"width", s.inputWidth, &cfg.Width},
		{"height", s.inputHeight, &cfg.Height},
		{"tick delay", s.inputDelay, &cfg.TickDelayMs},
		{"cell pitch", s.inputPitch, &cfg.CellPitch},
	}

	for _, f := range fields {
		v, err := strconv.Atoi(f.input.Text)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.name)
		}
		*f.dst = v
	}

	// A resized grid starts from its new centre.
	cfg.Centre()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *ConfigScreen) Draw(screen *ebiten.Image) {
	screen.Fill(types.ColorBackground)

	fonts := types.GetFonts()
	w, h := s.ctx.Size()
	startY := 120

	title := "SETTINGS"
	bounds := text.BoundString(fonts.Normal, title)
	text.Draw(screen, title, fonts.Normal, (w-bounds.Dx())/2, 60, types.ColorTextHighlight)

	for _, inp := range s.inputs() {
		inp.Draw(screen)
	}

	s.btnBack.Draw(screen)
	s.btnApply.Draw(screen)

	if s.errorMsg != "" {
		bounds := text.BoundString(fonts.Normal, s.errorMsg)
		text.Draw(screen, s.errorMsg, fonts.Normal, (w-bounds.Dx())/2, startY+220, types.ColorError)
	}

	hint := "Press TAB to switch fields, ENTER to apply"
	bounds = text.BoundString(fonts.Small, hint)
	text.Draw(screen, hint, fonts.Small, (w-bounds.Dx())/2, h-30, types.ColorTextDim)
}

func (s *ConfigScreen) OnEnter() {
	s.errorMsg = ""
	s.inputWidth.Focused = true
}

func (s *ConfigScreen) OnExit() {
	for _, inp := range s.inputs() {
		inp.Focused = false
	}
}

func (s *ConfigScreen) SetError(err string) {
	s.errorMsg = err
}
