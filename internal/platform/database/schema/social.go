package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	Text      string
	Rating    string
	UserID    string
	BookID    string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	Text:      "text",
	Rating:    "rating",
	UserID:    "userid",
	BookID:    "bookid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.Text, t.Rating, t.UserID, t.BookID, t.CreatedAt, t.UpdatedAt}
}
