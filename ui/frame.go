package ui

// Frame is the pure snapshot of the interactive screen. The model builds one
// per render; nothing in this package mutates it.
type Frame struct {
	Width  int
	Height int

	Focus         Focus
	GlobalActions []string
	GlobalIndex   int
	Worktrees     []string
	Selected      int
	Detail        []DetailLine
	Actions       []string
	ActionIndex   int
	Status        *Status

	Dialog *DialogFrame
}

type Focus int

const (
	FocusWorktrees Focus = iota
	FocusActions
	FocusGlobalActions
)

type Status struct {
	Text  string
	Error bool
}

type DetailTone int

const (
	DetailNormal DetailTone = iota
	DetailMuted
	DetailTitle
	DetailAccent
	DetailWarn
	DetailError
)

type DetailLine struct {
	Text string
	Tone DetailTone
}

type DialogKind int

const (
	DialogRemove DialogKind = iota
	DialogInfo
	DialogCreate
	DialogMerge
)

type Checkbox struct {
	Label   string
	Checked bool
}

type PickerLineKind int

const (
	PickerGroupHeader PickerLineKind = iota
	PickerOption
	PickerBlank
)

type PickerLine struct {
	Kind     PickerLineKind
	Text     string
	Selected bool
}

// DialogFrame describes whichever dialog is open. Fields are used per Kind:
// Remove and Merge use Options/Buttons, Info uses Message, Create adds the
// name input view and the base picker window.
type DialogFrame struct {
	Kind  DialogKind
	Title string

	Message string
	IsError bool

	Options        []Checkbox
	OptionIndex    int
	OptionsFocused bool

	Buttons        []string
	ButtonIndex    int
	ButtonsFocused bool

	ErrorText string

	NameView     string
	NameFocused  bool
	BaseFocused  bool
	Picker       []PickerLine
	PickerOffset int
	PickerHeight int
}
