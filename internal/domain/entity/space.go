package entity

// SpaceID uniquely identifies a workspace space.
type SpaceID string

// Space is a named workspace that owns a subset of tabs.
type Space struct {
	ID   SpaceID
	Name string
	Icon string
}

// SpaceList is the ordered workspace bar.
type SpaceList struct {
	Spaces   []*Space
	ActiveID SpaceID
}

// NewSpaceList creates an empty space list.
func NewSpaceList() *SpaceList {
	return &SpaceList{Spaces: make([]*Space, 0)}
}

func spaceID(s *Space) SpaceID { return s.ID }

// Add appends a space. The first space becomes active.
func (sl *SpaceList) Add(s *Space) {
	sl.Spaces = append(sl.Spaces, s)
	if sl.ActiveID == "" {
		sl.ActiveID = s.ID
	}
}

// Find returns a space by ID.
func (sl *SpaceList) Find(id SpaceID) *Space {
	for _, s := range sl.Spaces {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Move moves the spaces as one block to index.
func (sl *SpaceList) Move(ids []SpaceID, index int) bool {
	for _, id := range ids {
		if sl.Find(id) == nil {
			return false
		}
	}
	sl.Spaces = moveBlock(sl.Spaces, spaceID, ids, index)
	return true
}
