package classify

import (
	"path/filepath"
	"strings"
)

// extensionRules maps lowercase extensions to fixed classifications.
// Ambiguity is handled separately: extensions listed in ambiguousExtensions
// always fall through to the content heuristic for a better answer.
var extensionRules = map[string]Result{
	// Documents
	".pdf":  {CategoryDocuments, "PDFs"},
	".doc":  {CategoryDocuments, "Word"},
	".docx": {CategoryDocuments, "Word"},
	".rtf":  {CategoryDocuments, "Word"},
	".odt":  {CategoryDocuments, "Word"},
	".xls":  {CategoryDocuments, "Excel"},
	".xlsx": {CategoryDocuments, "Excel"},
	".ods":  {CategoryDocuments, "Excel"},
	".csv":  {CategoryDocuments, "Excel"},
	".ppt":  {CategoryDocuments, "Presentations"},
	".pptx": {CategoryDocuments, "Presentations"},
	".odp":  {CategoryDocuments, "Presentations"},
	".md":   {CategoryDocuments, "Text"},
	".txt":  {CategoryDocuments, "Text"},

	// Media
	".jpg":  {CategoryMedia, "Images"},
	".jpeg": {CategoryMedia, "Images"},
	".png":  {CategoryMedia, "Images"},
	".gif":  {CategoryMedia, "Images"},
	".bmp":  {CategoryMedia, "Images"},
	".webp": {CategoryMedia, "Images"},
	".svg":  {CategoryMedia, "Images"},
	".tiff": {CategoryMedia, "Images"},
	".mp4":  {CategoryMedia, "Videos"},
	".mkv":  {CategoryMedia, "Videos"},
	".avi":  {CategoryMedia, "Videos"},
	".mov":  {CategoryMedia, "Videos"},
	".wmv":  {CategoryMedia, "Videos"},
	".webm": {CategoryMedia, "Videos"},
	".mp3":  {CategoryMedia, "Audio"},
	".wav":  {CategoryMedia, "Audio"},
	".flac": {CategoryMedia, "Audio"},
	".ogg":  {CategoryMedia, "Audio"},
	".m4a":  {CategoryMedia, "Audio"},
	".aac":  {CategoryMedia, "Audio"},

	// Archives
	".zip": {CategoryArchives, "ZIP"},
	".rar": {CategoryArchives, "RAR"},
	".7z":  {CategoryArchives, "7Z"},
	".tar": {CategoryArchives, "TAR"},
	".gz":  {CategoryArchives, "TAR"},
	".tgz": {CategoryArchives, "TAR"},
	".bz2": {CategoryArchives, "TAR"},
	".xz":  {CategoryArchives, "TAR"},

	// Code
	".py":   {CategoryCode, "Python"},
	".pyw":  {CategoryCode, "Python"},
	".js":   {CategoryCode, "JavaScript"},
	".mjs":  {CategoryCode, "JavaScript"},
	".ts":   {CategoryCode, "JavaScript"},
	".jsx":  {CategoryCode, "JavaScript"},
	".html": {CategoryCode, "HTML"},
	".htm":  {CategoryCode, "HTML"},
	".css":  {CategoryCode, "HTML"},
	".go":   {CategoryCode, "Other"},
	".c":    {CategoryCode, "Other"},
	".cpp":  {CategoryCode, "Other"},
	".h":    {CategoryCode, "Other"},
	".java": {CategoryCode, "Other"},
	".rb":   {CategoryCode, "Other"},
	".rs":   {CategoryCode, "Other"},
	".sql":  {CategoryCode, "Other"},
	".json": {CategoryCode, "Other"},
	".yaml": {CategoryCode, "Other"},
	".yml":  {CategoryCode, "Other"},
	".toml": {CategoryCode, "Other"},

	// Executables
	".msi": {CategoryExecutables, "Installers"},
	".deb": {CategoryExecutables, "Installers"},
	".rpm": {CategoryExecutables, "Installers"},
	".dmg": {CategoryExecutables, "Installers"},
	".pkg": {CategoryExecutables, "Installers"},
	".exe": {CategoryExecutables, "Programs"},
	".bin": {CategoryExecutables, "Programs"},
	".app": {CategoryExecutables, "Programs"},
	".sh":  {CategoryExecutables, "Scripts"},
	".ps1": {CategoryExecutables, "Scripts"},

	// Temporary
	".tmp":   {CategoryTemporary, "Temp"},
	".temp":  {CategoryTemporary, "Temp"},
	".cache": {CategoryTemporary, "Cache"},
	".log":   {CategoryTemporary, "Logs"},
}

// ambiguousExtensions name extensions whose table entry is only a fallback:
// the content heuristic usually has a better answer (a .txt file full of
// Python, a .log that is really prose).
var ambiguousExtensions = map[string]struct{}{
	".txt": {},
	".log": {},
}

// lookupExtension returns the rule for path's extension. ambiguous reports
// whether the match must still fall through to the content heuristic.
func lookupExtension(path string) (result Result, ambiguous, ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Result{}, false, false
	}
	result, ok = extensionRules[ext]
	if !ok {
		return Result{}, false, false
	}
	_, ambiguous = ambiguousExtensions[ext]
	return result, ambiguous, true
}
