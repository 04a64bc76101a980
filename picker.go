package main

// The base-reference picker in the create dialog can hold more lines than the
// terminal has rows. The viewport below tracks a scroll offset over the
// flattened render lines and keeps the selected option visible as the cursor
// moves.

const (
	// Height used for the initial centering before the first
	// WindowSizeMsg arrives.
	assumedPickerHeight = 10
	pickerScrollMargin  = 2
)

type pickerLineKind int

const (
	pickerGroupHeader pickerLineKind = iota
	pickerOptionLine
	pickerBlankLine
)

type pickerLine struct {
	kind   pickerLineKind
	text   string
	group  int
	option int
}

type pickerViewport struct {
	lines  []pickerLine
	offset int
	height int
}

func (v *pickerViewport) viewHeight() int {
	if v.height <= 0 {
		return assumedPickerHeight
	}
	return v.height
}

func (v *pickerViewport) maxOffset() int {
	max := len(v.lines) - v.viewHeight()
	if max < 0 {
		return 0
	}
	return max
}

// centerOn places the given line in the middle of an assumed-height window.
// Used once when the dialog opens, before the real terminal height is known.
func (v *pickerViewport) centerOn(line int) {
	v.offset = line - assumedPickerHeight/2
	max := len(v.lines) - assumedPickerHeight
	if max < 0 {
		max = 0
	}
	if v.offset > max {
		v.offset = max
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// follow scrolls just enough to keep the selected line inside the window
// with a two-line margin at whichever edge the cursor approaches.
func (v *pickerViewport) follow(line int) {
	h := v.viewHeight()
	if line >= v.offset+h-pickerScrollMargin {
		v.offset = line - h + pickerScrollMargin + 2
	} else if line < v.offset+pickerScrollMargin {
		v.offset = line - pickerScrollMargin
	}
	// Margin rules can overshoot on very short windows.
	if line < v.offset {
		v.offset = line
	}
	if line >= v.offset+h {
		v.offset = line - h + 1
	}
	v.clampOffset()
}

func (v *pickerViewport) scrollToTop() {
	v.offset = 0
}

func (v *pickerViewport) scrollToBottom() {
	v.offset = v.maxOffset()
}

func (v *pickerViewport) setHeight(height int, selectedLine int) {
	v.height = height
	v.follow(selectedLine)
}

func (v *pickerViewport) clampOffset() {
	if v.offset > v.maxOffset() {
		v.offset = v.maxOffset()
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// flattenBaseGroups turns the grouped options into the render-line list the
// viewport scrolls over: a header per group, one line per option, and a blank
// separator between groups.
func flattenBaseGroups(groups []baseGroup) []pickerLine {
	var lines []pickerLine
	for g, group := range groups {
		if g > 0 {
			lines = append(lines, pickerLine{kind: pickerBlankLine})
		}
		lines = append(lines, pickerLine{kind: pickerGroupHeader, text: group.title, group: g, option: -1})
		for o, opt := range group.options {
			lines = append(lines, pickerLine{kind: pickerOptionLine, text: opt.label, group: g, option: o})
		}
	}
	return lines
}

// denseBaseIndices maps the flat selectable index space onto (group, option)
// pairs so cursor movement skips headers and separators.
func denseBaseIndices(groups []baseGroup) [][2]int {
	var indices [][2]int
	for g, group := range groups {
		for o := range group.options {
			indices = append(indices, [2]int{g, o})
		}
	}
	return indices
}

func lineForOption(lines []pickerLine, group int, option int) int {
	for i, l := range lines {
		if l.kind == pickerOptionLine && l.group == group && l.option == option {
			return i
		}
	}
	return 0
}
