package contextkeys

// Custom type avoids collisions with other context values.
type contextKey string

// DBContextKey is the key the per-request *gorm.DB handle is stored under.
const DBContextKey = contextKey("db")
