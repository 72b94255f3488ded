package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe   = "\uf0ac" // browser/web
	IconVersion = "\uf02b" // tag
	IconGo      = "\ue627" // go gopher
	IconArrow   = "\uf061" // arrow right

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconConfig  = "\ue615" // config
	IconFolder  = "\uf07b" // folder
	IconFolderO = "\uf07c" // folder open
	IconCursor  = "\uf054" // chevron-right
	IconCaret   = "\uf078" // chevron-down
	IconTab     = "\uf0ce" // table
	IconPin     = "\uf08d" // thumb-tack
	IconStar    = "\uf005" // star
	IconPlay    = "\uf04b" // play
)
