package redisrepo

import "fmt"

const (
	POST_KEY            = "post:%s:%d"         // <postID>:<generation>
	POST_GENERATION_KEY = "post-generation:%s" // <postID>
	USER_CACHE_KEY      = "user-cache:%s"      // <userID>
)

// PostKey is scoped by the post's generation, so entries written before a
// mutation are never read after it.
func PostKey(postID string, generation int64) string {
	return fmt.Sprintf(POST_KEY, postID, generation)
}

func PostGenerationKey(postID string) string {
	return fmt.Sprintf(POST_GENERATION_KEY, postID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}
