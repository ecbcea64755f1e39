package menu

// Item identifies one of the fixed, ordered menu rows.
type Item int

const (
	ItemPlaySong Item = iota
	ItemPlaySfx
	ItemSfxPan
	ItemMainVolume
	ItemOverrideTempo
	ItemChannelMask
	ItemStereoFlag
	ItemSongStartsFlag
	ItemStopSoundEffects
	ItemPauseUnpauseMusic
	ItemPauseMusicAndSfx
	ItemReloadCommonAudioData

	NumItems = 12
)

// Static row labels. The stereo and songs-start rows are blank here,
// their labels change with the flag value and are drawn by the setters.
var itemLabels = [NumItems]string{
	ItemPlaySong:              "PLAY SONG",
	ItemPlaySfx:               "PLAY SFX",
	ItemSfxPan:                "SFX PAN",
	ItemMainVolume:            "MAIN VOLUME",
	ItemOverrideTempo:         "OVERRIDE TEMPO",
	ItemChannelMask:           "MUSIC CHANNELS",
	ItemStereoFlag:            "",
	ItemSongStartsFlag:        "",
	ItemStopSoundEffects:      "STOP SOUND EFFECTS (X)",
	ItemPauseUnpauseMusic:     "PAUSE / UNPAUSE (START)",
	ItemPauseMusicAndSfx:      "PAUSE MUSIC AND SFX",
	ItemReloadCommonAudioData: "RELOAD COMMON AUDIO DATA",
}

// adjustSpeed selects how an adjustable value reacts to left/right.
type adjustSpeed int

const (
	// adjustNone marks rows without an adjustable numeric value.
	adjustNone adjustSpeed = iota

	// adjustSlow reacts to the press edge only.
	adjustSlow

	// adjustFast repeats every frame while the button is held.
	adjustFast
)

// valueSpec describes an adjustable numeric row: its speed and bounds.
// Bounds are inclusive and values clamp, they do not wrap.
type valueSpec struct {
	speed    adjustSpeed
	min, max uint8
}
