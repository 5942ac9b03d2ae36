package curation

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unknown names a forest type code missing from the nomenclature.
const Unknown = "Inconnu"

const (
	CodeField = "CODE_TFV"
	TypeField = "TFV"
)

type Class struct {
	Code int32
	Name string
}

func (c Class) Known() bool {
	return c.Code != 0
}

var (
	otherBroadleaf   = Class{11, "Autres feuillus"}
	oak              = Class{12, "Chêne"}
	locust           = Class{13, "Robinier"}
	poplar           = Class{14, "Peuplier"}
	broadleafMix     = Class{15, "Mélange de feuillus"}
	broadleafIslands = Class{16, "Feuillus en îlots"}
	otherConifer     = Class{21, "Autres conifères autre que pin"}
	otherPine        = Class{22, "Autres Pin"}
	douglas          = Class{23, "Douglas"}
	blackPine        = Class{24, "Pin laricio ou pin noir"}
	maritimePine     = Class{25, "Pin maritime"}
	coniferMix       = Class{26, "Mélange conifères"}
	coniferIslands   = Class{27, "Conifères en îlots"}
	coniferDominant  = Class{28, "Mélange de conifères prépondérants et feuillus"}
	broadleafDomin   = Class{29, "Mélange de feuillus prépondérants et conifères"}
)

// pixelClasses maps CODE_TFV values to the pixel-level nomenclature.
var pixelClasses = map[string]Class{
	"FF1-49-49": otherBroadleaf,
	"FF1-09-09": otherBroadleaf,
	"FF1-10-10": otherBroadleaf,
	"FF1G01-01": oak,
	"FF1-14-14": locust,
	"FP":        poplar,
	"FF1-00-00": broadleafMix,
	"FF1-00":    broadleafIslands,
	"FF2G61-61": otherConifer,
	"FF2-91-91": otherConifer,
	"FF2-90-90": otherConifer,
	"FF2-63-63": otherConifer,
	"FF2-52-52": otherPine,
	"FF2-80-80": otherPine,
	"FF2-81-81": otherPine,
	"FF2-64-64": douglas,
	"FF2G53-53": blackPine,
	"FF2-51-51": maritimePine,
	"FF2-00-00": coniferMix,
	"FF2-00":    coniferIslands,
	"FF32":      coniferDominant,
	"FF31":      broadleafDomin,
}

// objectClasses is the object-level nomenclature. It currently matches
// the pixel level code for code.
var objectClasses = pixelClasses

// ValidPixelCodes are the pixel classes kept for training.
var ValidPixelCodes = []int32{11, 12, 13, 14, 21, 22, 23, 24, 25}

// ExcludedFormations are the vegetation formations left out of the forest mask.
var ExcludedFormations = []string{
	"Formation herbacée",
	"Lande",
	"Forêt fermée sans couvert arboré",
	"Forêt ouverte sans couvert arboré",
}

func lookup(table map[string]Class, code string) Class {
	if c, ok := table[strings.TrimSpace(code)]; ok {
		return c
	}
	return Class{Name: Unknown}
}

// PixelClass returns the pixel-level class of a CODE_TFV value. Unknown
// codes give a zero code named Unknown.
func PixelClass(code string) Class {
	return lookup(pixelClasses, code)
}

func ObjectClass(code string) Class {
	return lookup(objectClasses, code)
}

func IsValidPixelCode(code int32) bool {
	return slices.Contains(ValidPixelCodes, code)
}

// ClassName returns the pixel-level name of a class code.
func ClassName(code int32) string {
	for _, c := range pixelClasses {
		if c.Code == code {
			return c.Name
		}
	}
	return Unknown
}

// Normalize returns s as valid NFC UTF-8. Input that is not UTF-8 is
// decoded as Latin-1, the usual encoding of shapefile attributes.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		if d, err := Latin1ToUtf8([]byte(s)); err == nil {
			s = string(d)
		}
	}
	return norm.NFC.String(strings.TrimSpace(s))
}

func Latin1ToUtf8(s []byte) ([]byte, error) {
	reader := transform.NewReader(bytes.NewReader(s), charmap.ISO8859_1.NewDecoder())
	return io.ReadAll(reader)
}

func IsExcludedFormation(name string) bool {
	name = Normalize(name)
	for _, ex := range ExcludedFormations {
		if Normalize(ex) == name {
			return true
		}
	}
	return false
}

// FormationFilter is the attribute filter selecting forest formations on field.
func FormationFilter(field string) string {
	quoted := make([]string, len(ExcludedFormations))
	for i, ex := range ExcludedFormations {
		quoted[i] = "'" + strings.ReplaceAll(Normalize(ex), "'", "''") + "'"
	}
	return field + " NOT IN (" + strings.Join(quoted, ", ") + ")"
}
