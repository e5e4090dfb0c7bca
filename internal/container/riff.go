package container

const (
	waveTagATRAC3      = 0x0270
	waveTagATRAC3Plus  = 0x0E23
	waveTagExtensible  = 0xFFFE
)

// parseRIFF walks a RIFF/WAVE container's chunks looking for "fmt " and
// "data" (spec §4.6 "RIFF WAV").
func parseRIFF(src Source) (Info, error) {
	var info Info
	info.Kind = KindRIFFWAV

	pos := int64(12)
	sawFmt := false
	for {
		hdr, err := readAtFull(src, pos, 8)
		if err != nil {
			return Info{}, errInvalidFile("short chunk header")
		}
		if len(hdr) < 8 {
			break
		}
		fourcc := string(hdr[0:4])
		size := int64(le32(hdr[4:8]))
		body := pos + 8

		switch fourcc {
		case "fmt ":
			if size < 16 {
				return Info{}, errInvalidFile("fmt chunk too small")
			}
			fmtBytes, err := readAtFull(src, body, int(size))
			if err != nil {
				return Info{}, errInvalidFile("short fmt chunk")
			}
			if err := parseRIFFFmt(fmtBytes, &info); err != nil {
				return Info{}, err
			}
			sawFmt = true
		case "data":
			info.dataOffset = body
			info.dataSize = size
			if !sawFmt {
				return Info{}, errInvalidFile("data chunk before fmt")
			}
			if info.BlockAlign == 0 {
				return Info{}, errInvalidFile("zero block_align")
			}
			return info, nil
		}

		pos = body + size
		if size%2 != 0 {
			pos++
		}
		if pos >= src.Size() {
			break
		}
	}
	if !sawFmt {
		return Info{}, errInvalidFile("missing fmt chunk")
	}
	return Info{}, errInvalidFile("missing data chunk")
}

func parseRIFFFmt(b []byte, info *Info) error {
	if len(b) < 16 {
		return errInvalidFile("fmt chunk truncated")
	}
	tag := le16(b[0:2])
	info.Channels = int(le16(b[2:4]))
	info.SampleRate = int(le32(b[4:8]))
	avgBytesPerSec := le32(b[8:12])
	info.BitRate = int(avgBytesPerSec) * 8
	info.BlockAlign = int(le16(b[12:14]))

	switch tag {
	case waveTagATRAC3:
		return finishATRAC3Fmt(b, info)
	case waveTagATRAC3Plus:
		info.Codec = CodecATRAC3Plus
		info.SamplesPerFrame = 2048
		return nil
	case waveTagExtensible:
		if len(b) < 40 {
			return errInvalidFile("WAVE_FORMAT_EXTENSIBLE fmt too small")
		}
		sub := le16(b[24:26])
		if sub == waveTagATRAC3 {
			return finishATRAC3Fmt(b, info)
		}
		info.Codec = CodecATRAC3Plus
		info.SamplesPerFrame = 2048
		return nil
	default:
		return errInvalidFile("unsupported WAVE format tag")
	}
}

// finishATRAC3Fmt synthesises the 14-byte ATRAC3 extradata blob from the
// trailing fmt bytes, per spec §4.6.
func finishATRAC3Fmt(b []byte, info *Info) error {
	if len(b) < 28 {
		return errInvalidFile("ATRAC3 fmt chunk too small")
	}
	info.Codec = CodecATRAC3
	info.SamplesPerFrame = 1024
	info.JointStereo = le16(b[22:24]) == 1

	extra := make([]byte, 14)
	extra[0] = 1
	copy(extra[1:], b[18:28])
	info.Extradata = extra
	return nil
}
