package util

import (
	"fmt"
	"net/url"

	"github.com/navbryce/yatube/config"
)

// Avatar is the generated avatar for users without an uploaded picture
func Avatar(seed string) string {
	return fmt.Sprintf("https://avatars.dicebear.com/api/identicon/%v.svg?size=%v", url.PathEscape(seed), config.AVATAR_SIZE)
}
