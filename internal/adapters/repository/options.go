package repository

// Default bucket counts, sized for roughly 19k players and 140k users.
const (
	defaultPlayerBuckets = 3_000
	defaultRatingBuckets = 3_000
	defaultUserBuckets   = 20_000
	defaultTrieBuckets   = 26
)

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithPlayerBuckets sets the bucket count of the players table.
func WithPlayerBuckets(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.playerBuckets = n
		}
	}
}

// WithRatingBuckets sets the bucket count of the global ratings table.
func WithRatingBuckets(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.ratingBuckets = n
		}
	}
}

// WithUserBuckets sets the bucket count of the users table.
func WithUserBuckets(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.userBuckets = n
		}
	}
}

// WithTrieBuckets sets the child bucket count of every index node.
func WithTrieBuckets(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.trieBuckets = n
		}
	}
}
