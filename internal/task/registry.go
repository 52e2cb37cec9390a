package task

// Info is the static metadata the balance trackers need about a task type.
type Info struct {
	Size Size

	// NewVocab marks task types that introduce never-seen vocabulary.
	// These are subject to the hard new-vocab caps.
	NewVocab bool
}

// Registry maps every task type to its metadata. Types missing from the
// registry default to small.
var Registry = map[Type]Info{
	TypeVocabTryToRemember:        {Size: SizeSmall, NewVocab: true},
	TypeGuessSentenceMeaning:      {Size: SizeSmall, NewVocab: true},
	TypeVocabRevealTargetToNative: {Size: SizeSmall},
	TypeVocabRevealNativeToTarget: {Size: SizeSmall},
	TypeChoiceTwoTargetToNative:   {Size: SizeSmall},
	TypeChoiceTwoNativeToTarget:   {Size: SizeSmall},
	TypeChoiceFourTargetToNative:  {Size: SizeSmall},
	TypeChoiceFourNativeToTarget:  {Size: SizeSmall},
	TypeClozeChoice:               {Size: SizeSmall},
	TypeClozeReveal:               {Size: SizeSmall},
	TypeFreeTranslate:             {Size: SizeMedium},
	TypeAddTranslation:            {Size: SizeSmall},
	TypeAddPronunciation:          {Size: SizeSmall},
	TypeExtractFromResource:       {Size: SizeBig},
	TypeConsumeImmersionContent:   {Size: SizeBig},
	TypeAddSubGoals:               {Size: SizeMedium},
	TypeAddVocabToGoal:            {Size: SizeMedium},
	TypeAddMilestones:             {Size: SizeMedium},
}

// SizeOf returns the size bucket for a task type.
func SizeOf(t Type) Size {
	if info, ok := Registry[t]; ok {
		return info.Size
	}
	return SizeSmall
}

// IsNewVocab reports whether the task type introduces unseen vocabulary.
func IsNewVocab(t Type) bool {
	return Registry[t].NewVocab
}

// OfSize lists all registered task types in the given size bucket.
func OfSize(s Size) []Type {
	var types []Type
	for t, info := range Registry {
		if info.Size == s {
			types = append(types, t)
		}
	}
	return types
}
