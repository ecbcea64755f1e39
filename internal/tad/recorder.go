package tad

// Recorder implements Driver by recording every call in order. Status
// query results are settable fields. It is meant for tests.
type Recorder struct {
	Calls []Call

	SongPlaying  bool
	SfxPlaying   bool
	SongLoaded   bool
	LoaderActive bool

	// QueueFull makes Queue report the normal lane as occupied.
	QueueFull bool
}

// Call is one recorded driver invocation.
type Call struct {
	Name  string
	Cmd   Command
	Param uint8
	Arg2  uint8 // pan for QueuePannedSoundEffect
}

func (r *Recorder) record(c Call) { r.Calls = append(r.Calls, c) }

// Reset drops all recorded calls.
func (r *Recorder) Reset() { r.Calls = nil }

// Filter returns the recorded calls with the given name.
func (r *Recorder) Filter(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Process() { r.record(Call{Name: "Process"}) }

func (r *Recorder) LoadSong(song uint8) {
	r.record(Call{Name: "LoadSong", Param: song})
}

func (r *Recorder) QueueSoundEffect(sfx uint8) {
	r.record(Call{Name: "QueueSoundEffect", Param: sfx})
}

func (r *Recorder) QueuePannedSoundEffect(sfx, pan uint8) {
	r.record(Call{Name: "QueuePannedSoundEffect", Param: sfx, Arg2: pan})
}

func (r *Recorder) Queue(cmd Command, param uint8) bool {
	r.record(Call{Name: "Queue", Cmd: cmd, Param: param})
	return !r.QueueFull
}

func (r *Recorder) QueueOverride(cmd Command, param uint8) {
	r.record(Call{Name: "QueueOverride", Cmd: cmd, Param: param})
}

func (r *Recorder) SetStereo() { r.record(Call{Name: "SetStereo"}) }

func (r *Recorder) SetMono() { r.record(Call{Name: "SetMono"}) }

func (r *Recorder) SongsStartImmediately() {
	r.record(Call{Name: "SongsStartImmediately"})
}

func (r *Recorder) SongsStartPaused() {
	r.record(Call{Name: "SongsStartPaused"})
}

func (r *Recorder) ReloadCommonAudioData() {
	r.record(Call{Name: "ReloadCommonAudioData"})
}

func (r *Recorder) IsSongPlaying() bool { return r.SongPlaying }

func (r *Recorder) IsSfxPlaying() bool { return r.SfxPlaying }

func (r *Recorder) IsSongLoaded() bool { return r.SongLoaded }

func (r *Recorder) IsLoaderActive() bool { return r.LoaderActive }

var _ Driver = (*Recorder)(nil)
var _ Driver = (*Simulator)(nil)
