package terminal

import "github.com/gdamore/tcell/v2"

// Intent is the semantic action a key maps to
type Intent uint8

const (
	IntentNone Intent = iota

	// System
	IntentQuit
	IntentTogglePause // p
	IntentForceLow    // l
	IntentAutoAdjust  // a
	IntentResetRate   // r
	IntentOverlay     // o

	// Pages
	IntentLanding     // 1
	IntentConvergence // 2
	IntentSignatures  // 3
	IntentNextPage    // Tab

	// Scrolling
	IntentScrollUp       // k, Up arrow
	IntentScrollDown     // j, Down arrow
	IntentScrollPageUp   // PgUp
	IntentScrollPageDown // PgDn

	// Signature entry
	IntentSign // s
)

// Text entry intents, only produced while a signature is being typed
const (
	IntentTextChar Intent = iota + 64
	IntentTextBackspace
	IntentTextConfirm
	IntentTextCancel
	IntentTextColor // Tab cycles the signature colour
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, paging)
	SpecialKeys map[tcell.Key]Intent

	// Plain rune bindings
	Runes map[rune]Intent

	// Keys while typing a signature; every other rune is text
	TextKeys map[tcell.Key]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyTab:    IntentNextPage,
			tcell.KeyUp:     IntentScrollUp,
			tcell.KeyDown:   IntentScrollDown,
			tcell.KeyPgUp:   IntentScrollPageUp,
			tcell.KeyPgDn:   IntentScrollPageDown,
			tcell.KeyCtrlL:  IntentForceLow,
			tcell.KeyCtrlR:  IntentResetRate,
		},

		Runes: map[rune]Intent{
			'q': IntentQuit,
			'p': IntentTogglePause,
			' ': IntentTogglePause,
			'l': IntentForceLow,
			'a': IntentAutoAdjust,
			'r': IntentResetRate,
			'o': IntentOverlay,
			'1': IntentLanding,
			'2': IntentConvergence,
			'3': IntentSignatures,
			'k': IntentScrollUp,
			'j': IntentScrollDown,
			's': IntentSign,
		},

		TextKeys: map[tcell.Key]Intent{
			tcell.KeyCtrlC:      IntentQuit,
			tcell.KeyEscape:     IntentTextCancel,
			tcell.KeyEnter:      IntentTextConfirm,
			tcell.KeyBackspace:  IntentTextBackspace,
			tcell.KeyBackspace2: IntentTextBackspace,
			tcell.KeyTab:        IntentTextColor,
		},
	}
}

// Translate maps a key event; text selects the signature entry bindings
func (t *KeyTable) Translate(ev *tcell.EventKey, text bool) Intent {
	if text {
		if in, ok := t.TextKeys[ev.Key()]; ok {
			return in
		}
		if ev.Key() == tcell.KeyRune {
			return IntentTextChar
		}
		return IntentNone
	}

	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return IntentNone
		}
		return t.Runes[ev.Rune()]
	}
	return t.SpecialKeys[ev.Key()]
}
