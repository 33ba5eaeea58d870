package protocol

// KeyCode is a layout-independent physical key identifier (scancode-like).
// Discriminants are wire-stable and append-only: new keys go at the end.
type KeyCode uint16

const (
	// Writing system keys
	KeyBackquote KeyCode = iota
	KeyBackslash
	KeyBracketLeft
	KeyBracketRight
	KeyComma
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
	KeyEqual
	KeyIntlBackslash
	KeyIntlRo
	KeyIntlYen
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyMinus
	KeyPeriod
	KeyQuote
	KeySemicolon
	KeySlash

	// Functional keys
	KeyAltLeft
	KeyAltRight
	KeyBackspace
	KeyCapsLock
	KeyContextMenu
	KeyControlLeft
	KeyControlRight
	KeyEnter
	KeySuperLeft
	KeySuperRight
	KeyShiftLeft
	KeyShiftRight
	KeySpace
	KeyTab

	// Control keys
	KeyDelete
	KeyEnd
	KeyHelp
	KeyHome
	KeyInsert
	KeyPageDown
	KeyPageUp

	// Arrow keys
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp

	// Numpad keys
	KeyNumLock
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadAdd
	KeyNumpadBackspace
	KeyNumpadClear
	KeyNumpadClearEntry
	KeyNumpadComma
	KeyNumpadDecimal
	KeyNumpadDivide
	KeyNumpadEnter
	KeyNumpadEqual
	KeyNumpadHash
	KeyNumpadMemoryAdd
	KeyNumpadMemoryClear
	KeyNumpadMemoryRecall
	KeyNumpadMemoryStore
	KeyNumpadMemorySubtract
	KeyNumpadMultiply
	KeyNumpadParenLeft
	KeyNumpadParenRight
	KeyNumpadStar
	KeyNumpadSubtract

	// Function keys
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// Lock keys
	KeyScrollLock

	// Media keys
	KeyAudioVolumeDown
	KeyAudioVolumeMute
	KeyAudioVolumeUp
	KeyMediaPlayPause
	KeyMediaStop
	KeyMediaTrackNext
	KeyMediaTrackPrevious

	// Browser keys
	KeyBrowserBack
	KeyBrowserFavorites
	KeyBrowserForward
	KeyBrowserHome
	KeyBrowserRefresh
	KeyBrowserSearch
	KeyBrowserStop

	// System keys
	KeyPrintScreen
	KeyPause

	// Unknown/unidentified key
	KeyUnidentified
)

var keyCodeNames = [...]string{
	KeyBackquote:            "Backquote",
	KeyBackslash:            "Backslash",
	KeyBracketLeft:          "BracketLeft",
	KeyBracketRight:         "BracketRight",
	KeyComma:                "Comma",
	KeyDigit0:               "Digit0",
	KeyDigit1:               "Digit1",
	KeyDigit2:               "Digit2",
	KeyDigit3:               "Digit3",
	KeyDigit4:               "Digit4",
	KeyDigit5:               "Digit5",
	KeyDigit6:               "Digit6",
	KeyDigit7:               "Digit7",
	KeyDigit8:               "Digit8",
	KeyDigit9:               "Digit9",
	KeyEqual:                "Equal",
	KeyIntlBackslash:        "IntlBackslash",
	KeyIntlRo:               "IntlRo",
	KeyIntlYen:              "IntlYen",
	KeyA:                    "KeyA",
	KeyB:                    "KeyB",
	KeyC:                    "KeyC",
	KeyD:                    "KeyD",
	KeyE:                    "KeyE",
	KeyF:                    "KeyF",
	KeyG:                    "KeyG",
	KeyH:                    "KeyH",
	KeyI:                    "KeyI",
	KeyJ:                    "KeyJ",
	KeyK:                    "KeyK",
	KeyL:                    "KeyL",
	KeyM:                    "KeyM",
	KeyN:                    "KeyN",
	KeyO:                    "KeyO",
	KeyP:                    "KeyP",
	KeyQ:                    "KeyQ",
	KeyR:                    "KeyR",
	KeyS:                    "KeyS",
	KeyT:                    "KeyT",
	KeyU:                    "KeyU",
	KeyV:                    "KeyV",
	KeyW:                    "KeyW",
	KeyX:                    "KeyX",
	KeyY:                    "KeyY",
	KeyZ:                    "KeyZ",
	KeyMinus:                "Minus",
	KeyPeriod:               "Period",
	KeyQuote:                "Quote",
	KeySemicolon:            "Semicolon",
	KeySlash:                "Slash",
	KeyAltLeft:              "AltLeft",
	KeyAltRight:             "AltRight",
	KeyBackspace:            "Backspace",
	KeyCapsLock:             "CapsLock",
	KeyContextMenu:          "ContextMenu",
	KeyControlLeft:          "ControlLeft",
	KeyControlRight:         "ControlRight",
	KeyEnter:                "Enter",
	KeySuperLeft:            "SuperLeft",
	KeySuperRight:           "SuperRight",
	KeyShiftLeft:            "ShiftLeft",
	KeyShiftRight:           "ShiftRight",
	KeySpace:                "Space",
	KeyTab:                  "Tab",
	KeyDelete:               "Delete",
	KeyEnd:                  "End",
	KeyHelp:                 "Help",
	KeyHome:                 "Home",
	KeyInsert:               "Insert",
	KeyPageDown:             "PageDown",
	KeyPageUp:               "PageUp",
	KeyArrowDown:            "ArrowDown",
	KeyArrowLeft:            "ArrowLeft",
	KeyArrowRight:           "ArrowRight",
	KeyArrowUp:              "ArrowUp",
	KeyNumLock:              "NumLock",
	KeyNumpad0:              "Numpad0",
	KeyNumpad1:              "Numpad1",
	KeyNumpad2:              "Numpad2",
	KeyNumpad3:              "Numpad3",
	KeyNumpad4:              "Numpad4",
	KeyNumpad5:              "Numpad5",
	KeyNumpad6:              "Numpad6",
	KeyNumpad7:              "Numpad7",
	KeyNumpad8:              "Numpad8",
	KeyNumpad9:              "Numpad9",
	KeyNumpadAdd:            "NumpadAdd",
	KeyNumpadBackspace:      "NumpadBackspace",
	KeyNumpadClear:          "NumpadClear",
	KeyNumpadClearEntry:     "NumpadClearEntry",
	KeyNumpadComma:          "NumpadComma",
	KeyNumpadDecimal:        "NumpadDecimal",
	KeyNumpadDivide:         "NumpadDivide",
	KeyNumpadEnter:          "NumpadEnter",
	KeyNumpadEqual:          "NumpadEqual",
	KeyNumpadHash:           "NumpadHash",
	KeyNumpadMemoryAdd:      "NumpadMemoryAdd",
	KeyNumpadMemoryClear:    "NumpadMemoryClear",
	KeyNumpadMemoryRecall:   "NumpadMemoryRecall",
	KeyNumpadMemoryStore:    "NumpadMemoryStore",
	KeyNumpadMemorySubtract: "NumpadMemorySubtract",
	KeyNumpadMultiply:       "NumpadMultiply",
	KeyNumpadParenLeft:      "NumpadParenLeft",
	KeyNumpadParenRight:     "NumpadParenRight",
	KeyNumpadStar:           "NumpadStar",
	KeyNumpadSubtract:       "NumpadSubtract",
	KeyEscape:               "Escape",
	KeyF1:                   "F1",
	KeyF2:                   "F2",
	KeyF3:                   "F3",
	KeyF4:                   "F4",
	KeyF5:                   "F5",
	KeyF6:                   "F6",
	KeyF7:                   "F7",
	KeyF8:                   "F8",
	KeyF9:                   "F9",
	KeyF10:                  "F10",
	KeyF11:                  "F11",
	KeyF12:                  "F12",
	KeyF13:                  "F13",
	KeyF14:                  "F14",
	KeyF15:                  "F15",
	KeyF16:                  "F16",
	KeyF17:                  "F17",
	KeyF18:                  "F18",
	KeyF19:                  "F19",
	KeyF20:                  "F20",
	KeyF21:                  "F21",
	KeyF22:                  "F22",
	KeyF23:                  "F23",
	KeyF24:                  "F24",
	KeyScrollLock:           "ScrollLock",
	KeyAudioVolumeDown:      "AudioVolumeDown",
	KeyAudioVolumeMute:      "AudioVolumeMute",
	KeyAudioVolumeUp:        "AudioVolumeUp",
	KeyMediaPlayPause:       "MediaPlayPause",
	KeyMediaStop:            "MediaStop",
	KeyMediaTrackNext:       "MediaTrackNext",
	KeyMediaTrackPrevious:   "MediaTrackPrevious",
	KeyBrowserBack:          "BrowserBack",
	KeyBrowserFavorites:     "BrowserFavorites",
	KeyBrowserForward:       "BrowserForward",
	KeyBrowserHome:          "BrowserHome",
	KeyBrowserRefresh:       "BrowserRefresh",
	KeyBrowserSearch:        "BrowserSearch",
	KeyBrowserStop:          "BrowserStop",
	KeyPrintScreen:          "PrintScreen",
	KeyPause:                "Pause",
	KeyUnidentified:         "Unidentified",
}

// String returns the W3C-style key name, or "Unidentified" for codes this
// build does not know.
func (k KeyCode) String() string {
	if int(k) < len(keyCodeNames) && keyCodeNames[k] != "" {
		return keyCodeNames[k]
	}
	return "Unidentified"
}
