package agent

import (
	"fmt"

	"github.com/easeaico/maitri/internal/models"
)

const (
	fallbackRateLimited = "API quota finished ho gaya hai. Please try after some time. Main yahan hun tumhare liye!"
	fallbackSafety      = "Safety filter ne response block kar diya. Can you rephrase your message?"
	fallbackNetwork     = "Network issue hai. Internet connection check karo and try again."
	fallbackGeneric     = "Technical glitch: %s. But main hoon na, try again!"
)

var fallbackReplies = map[models.ErrorKind]string{
	models.ErrorKindRateLimited:   fallbackRateLimited,
	models.ErrorKindSafetyBlocked: fallbackSafety,
	models.ErrorKindNetwork:       fallbackNetwork,
}

// fallbackReply returns the canned reply served when the backend fails with kind.
func fallbackReply(kind models.ErrorKind, err error) string {
	if reply, ok := fallbackReplies[kind]; ok {
		return reply
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf(fallbackGeneric, msg)
}
