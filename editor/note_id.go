package editor

// NoteID describes a plucked note, targeted either at one specific string or
// at whichever string can sound the pitch. If Go had union or Either types,
// this would be it, but in absence of those, this uses a boolean to define if
// the string is given or chosen by the player.
type NoteID struct {
	HasString bool
	String    int
	Pitch     byte
}

func NoteIDString(str int, pitch byte) NoteID {
	return NoteID{HasString: true, String: str, Pitch: pitch}
}

func NoteIDPitch(pitch byte) NoteID {
	return NoteID{HasString: false, Pitch: pitch}
}
