package atrac3

// Result is the return value of DecodeFile/DecodeMemory: the fully
// decoded, interleaved PCM for a stream plus its container descriptor
// (spec §9 "one-shot convenience wrappers").
type Result struct {
	Samples []float32
	Info    ContainerInfo
}

// DecodeFile opens path, decodes every PCM frame it contains, and closes
// it. It is a convenience wrapper around InitFile + ReadPCMFramesF32 +
// Uninit for callers that want the whole stream in memory at once rather
// than a streaming cursor.
func DecodeFile(path string) (*Result, error) {
	d, err := InitFile(path, Config{})
	if err != nil {
		return nil, err
	}
	defer d.Uninit()
	return decodeAll(d)
}

// DecodeMemory parses and decodes a whole in-memory container. data must
// outlive the call (spec §5 "Ownership") but not beyond it, since the
// returned samples are a fresh copy.
func DecodeMemory(data []byte) (*Result, error) {
	d, err := InitMemory(data, Config{})
	if err != nil {
		return nil, err
	}
	return decodeAll(d)
}

func decodeAll(d *Decoder) (*Result, error) {
	info := d.GetContainerInfo()
	total := d.GetLengthInPCMFrames()
	out := make([]float32, total*int64(info.Channels))

	n, err := d.ReadPCMFramesF32(int(total), out)
	if err != nil {
		return nil, err
	}
	return &Result{
		Samples: out[:int64(n)*int64(info.Channels)],
		Info:    info,
	}, nil
}
