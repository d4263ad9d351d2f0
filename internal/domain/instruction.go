package domain

// InstructionKind is the tag of a mutation instruction.
type InstructionKind string

// Instruction kinds emitted by the compiler.
const (
	KindInsertText        InstructionKind = "insertText"
	KindDeleteRange       InstructionKind = "deleteRange"
	KindSetParagraphStyle InstructionKind = "setParagraphStyle"
	KindSetTextStyle      InstructionKind = "setTextStyle"
	KindCreateBullets     InstructionKind = "createBullets"
)

// DefaultBulletPreset is the glyph preset used for bulleted lists.
const DefaultBulletPreset = "BULLET_DISC_CIRCLE_SQUARE"

// Instruction is one low-level, index-addressed mutation. Instructions in a
// batch are applied in order; indices already account for earlier
// instructions of the same batch.
type Instruction interface {
	Kind() InstructionKind
	isInstruction()
}

// InsertText inserts Text at Index.
type InsertText struct {
	Index int64
	Text  string
}

// DeleteRange removes [Start, End).
type DeleteRange struct {
	Start int64
	End   int64
}

// SetParagraphStyle applies the masked fields of Style to paragraphs
// overlapping [Start, End).
type SetParagraphStyle struct {
	Start  int64
	End    int64
	Style  ParagraphStyle
	Fields []string
}

// SetTextStyle applies the masked fields of Style to [Start, End).
type SetTextStyle struct {
	Start  int64
	End    int64
	Style  Style
	Fields []string
}

// CreateBullets turns paragraphs overlapping [Start, End) into list items.
type CreateBullets struct {
	Start  int64
	End    int64
	Preset string
}

// Opaque is a pass-through instruction the system does not model; only its
// kind name is known.
type Opaque struct {
	Name string
}

func (InsertText) Kind() InstructionKind        { return KindInsertText }
func (DeleteRange) Kind() InstructionKind       { return KindDeleteRange }
func (SetParagraphStyle) Kind() InstructionKind { return KindSetParagraphStyle }
func (SetTextStyle) Kind() InstructionKind      { return KindSetTextStyle }
func (CreateBullets) Kind() InstructionKind     { return KindCreateBullets }
func (o Opaque) Kind() InstructionKind          { return InstructionKind(o.Name) }

func (InsertText) isInstruction()        {}
func (DeleteRange) isInstruction()       {}
func (SetParagraphStyle) isInstruction() {}
func (SetTextStyle) isInstruction()      {}
func (CreateBullets) isInstruction()     {}
func (Opaque) isInstruction()            {}
