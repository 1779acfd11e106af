package daf

import (
	"strings"

	"github.com/hallorbit/spicekernel/kernelerr"
)

// Layout offsets within the 1024-byte file record (spec.md §6).
const (
	offID        = 0
	lenID        = 8
	offND        = 8
	offNI        = 12
	offFilename  = 16
	lenFilename  = 60
	offForward   = 76
	offBackward  = 80
	offFreeAddr  = 84
	offEndian    = 88
	lenEndian    = 8
)

// hostEndianTag is the only endian tag this core accepts; big-endian hosts
// are out of scope (spec.md §1 Non-goals).
const hostEndianTag = "LTL-IEEE"

const (
	idSPK = "DAF/SPK "
	idPCK = "DAF/PCK "
)

// FileRecord is the parsed first 1024-byte block of a DAF.
type FileRecord struct {
	ID               string
	Kind             kernelerr.Kind
	ND               int32
	NI               int32
	InternalFilename string
	Forward          int32
	Backward         int32
	FreeAddress      int32
	Endian           string
}

func isAllZero(bs []byte) bool {
	for _, b := range bs {
		if b != 0 {
			return false
		}
	}
	return true
}

func parseFileRecord(bv *byteView) (FileRecord, error) {
	header, err := bv.slice(0, recordLen)
	if err != nil {
		return FileRecord{}, err
	}
	if isAllZero(header) {
		return FileRecord{}, kernelerr.ErrEmptyRecord
	}

	idBytes, err := bv.slice(offID, offID+lenID)
	if err != nil {
		return FileRecord{}, err
	}
	id := string(idBytes)

	var kind kernelerr.Kind
	switch id {
	case idSPK:
		kind = kernelerr.SPK
	case idPCK:
		kind = kernelerr.BPC
	default:
		if strings.HasPrefix(id, "DAF/") {
			return FileRecord{}, &kernelerr.UnsupportedIdentifier{Loci: id}
		}
		return FileRecord{}, kernelerr.ErrNotDAF
	}

	nd, err := bv.int32At(offND)
	if err != nil {
		return FileRecord{}, err
	}
	ni, err := bv.int32At(offNI)
	if err != nil {
		return FileRecord{}, err
	}

	nameBytes, err := bv.slice(offFilename, offFilename+lenFilename)
	if err != nil {
		return FileRecord{}, err
	}

	fward, err := bv.int32At(offForward)
	if err != nil {
		return FileRecord{}, err
	}
	bward, err := bv.int32At(offBackward)
	if err != nil {
		return FileRecord{}, err
	}
	free, err := bv.int32At(offFreeAddr)
	if err != nil {
		return FileRecord{}, err
	}

	endianBytes, err := bv.slice(offEndian, offEndian+lenEndian)
	if err != nil {
		return FileRecord{}, err
	}
	endian := string(endianBytes)
	if endian != hostEndianTag {
		return FileRecord{}, kernelerr.ErrWrongEndian
	}

	return FileRecord{
		ID:               id,
		Kind:             kind,
		ND:               nd,
		NI:               ni,
		InternalFilename: strings.TrimRight(strings.TrimSpace(string(nameBytes)), "\x00"),
		Forward:          fward,
		Backward:         bward,
		FreeAddress:      free,
		Endian:           endian,
	}, nil
}
