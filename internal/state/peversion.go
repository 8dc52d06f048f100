package state

import (
	"debug/pe"
	"encoding/binary"
	"fmt"
)

// fixedFileInfoSignature marks the start of a VS_FIXEDFILEINFO block inside
// a PE version resource.
const fixedFileInfoSignature = 0xFEEF04BD

// readExecutableVersion reads the file version embedded in a PE executable's
// resource section. Non-PE binaries (the Linux and macOS builds carry their
// version only in application.ini) report ok=false.
func readExecutableVersion(path string) (string, bool) {
	f, err := pe.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	sect := f.Section(".rsrc")
	if sect == nil {
		return "", false
	}

	data, err := sect.Data()
	if err != nil {
		return "", false
	}

	return findFixedFileInfo(data)
}

// findFixedFileInfo scans resource data for the VS_FIXEDFILEINFO signature
// and decodes the two 32-bit file version words that follow it. The block is
// DWORD-aligned within the resource.
func findFixedFileInfo(data []byte) (string, bool) {
	for off := 0; off+16 <= len(data); off += 4 {
		if binary.LittleEndian.Uint32(data[off:]) != fixedFileInfoSignature {
			continue
		}
		// Layout: dwSignature, dwStrucVersion, dwFileVersionMS, dwFileVersionLS.
		ms := binary.LittleEndian.Uint32(data[off+8:])
		ls := binary.LittleEndian.Uint32(data[off+12:])
		return fmt.Sprintf("%d.%d.%d.%d", ms>>16, ms&0xFFFF, ls>>16, ls&0xFFFF), true
	}
	return "", false
}
