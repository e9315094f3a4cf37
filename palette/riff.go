package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
A Microsoft RIFF palette is a "PAL " form holding "data" chunks:

typedef struct tagLOGPALETTE {
  WORD         palVersion;     // 0x0300
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1]; // peRed, peGreen, peBlue, peFlags
} LOGPALETTE;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// Read loads every palette chunk of a RIFF PAL stream, in order, as one
// palette.
func Read(r io.Reader) (color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", string(formType[:]))
	}

	return readChunks(rd, "PAL")
}

func readChunks(r *riff.Reader, ident string) (color.Palette, error) {
	var pal color.Palette

	for i := 0; ; i++ {
		id, size, data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return pal, nil
		} else if err != nil {
			return pal, fmt.Errorf("could not read chunk %s#%d: %w", ident, i, err)
		}

		chunk := fmt.Sprintf("%s#%d", ident, i)
		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return pal, fmt.Errorf("could not read list from chunk %s: %w", chunk, err)
			} else if listType != palType {
				return pal, fmt.Errorf("chunk %s has unsupported list type %q", chunk, string(listType[:]))
			}
			sub, err := readChunks(list, chunk)
			pal = append(pal, sub...)
			if err != nil {
				return pal, err
			}
		case dataType:
			entries, err := readEntries(data, chunk)
			pal = append(pal, entries...)
			if err != nil {
				return pal, err
			}
		default:
			return pal, fmt.Errorf("unsupported chunk type in %s: %q", chunk, string(id[:]))
		}
	}
}

func readEntries(r io.Reader, chunk string) (color.Palette, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("could not read header of chunk %s: %w", chunk, err)
	}
	if ver := binary.LittleEndian.Uint16(header[:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", chunk, ver)
	}

	count := int(binary.LittleEndian.Uint16(header[2:]))
	pal := make(color.Palette, 0, count)
	var entry [4]byte
	for i := range count {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return pal, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, chunk, err)
		}
		pal = append(pal, color.RGBA{R: entry[0], G: entry[1], B: entry[2], A: 0xff})
	}

	return pal, nil
}

// Write stores pal as a single-chunk RIFF PAL stream. Alpha is dropped.
func Write(w io.Writer, pal color.Palette) (int64, error) {
	if len(pal) > 0xffff {
		return 0, fmt.Errorf("palette too large for RIFF: %d colors", len(pal))
	}

	dataLen := 4 + 4*len(pal)
	buf := make([]byte, 0, 20+dataLen)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+dataLen))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataLen))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(pal)))
	for _, col := range pal {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		buf = append(buf, c.R, c.G, c.B, 0)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("could not write palette: %w", err)
	}
	return int64(n), nil
}
