package classify

import (
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// sniffHeaderSize is the number of leading bytes needed for a reliable
// magic-byte match.
const sniffHeaderSize = 8192

// sniff infers a coarse classification from the file's leading bytes when
// the extension table has no answer. Returns ok=false when the signature is
// unrecognized or maps to nothing in the category tree.
func sniff(header []byte) (Result, bool) {
	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return Result{}, false
	}

	switch kind.MIME.Type {
	case "image":
		return Result{CategoryMedia, "Images"}, true
	case "video":
		return Result{CategoryMedia, "Videos"}, true
	case "audio":
		return Result{CategoryMedia, "Audio"}, true
	}

	switch kind {
	case matchers.TypeZip:
		return Result{CategoryArchives, "ZIP"}, true
	case matchers.TypeRar:
		return Result{CategoryArchives, "RAR"}, true
	case matchers.Type7z:
		return Result{CategoryArchives, "7Z"}, true
	case matchers.TypeTar, matchers.TypeGz, matchers.TypeBz2, matchers.TypeXz:
		return Result{CategoryArchives, "TAR"}, true
	case matchers.TypeExe, matchers.TypeElf:
		return Result{CategoryExecutables, "Programs"}, true
	case matchers.TypePdf:
		return Result{CategoryDocuments, "PDFs"}, true
	case matchers.TypeDoc, matchers.TypeDocx, matchers.TypeRtf:
		return Result{CategoryDocuments, "Word"}, true
	case matchers.TypeXls, matchers.TypeXlsx:
		return Result{CategoryDocuments, "Excel"}, true
	case matchers.TypePpt, matchers.TypePptx:
		return Result{CategoryDocuments, "Presentations"}, true
	}

	return Result{}, false
}
