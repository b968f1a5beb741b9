package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SharerUserIDHeader carries the numeric id of the calling user.
const SharerUserIDHeader = "X-Sharer-User-Id"

const userIDKey = "userId"

func SharerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerUserIDHeader)

		if len(raw) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + SharerUserIDHeader + " header"})
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)

		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + SharerUserIDHeader + " header"})
			c.Abort()
			return
		}

		c.Set(userIDKey, id)
	}
}

func sharerID(c *gin.Context) int64 {
	return c.MustGet(userIDKey).(int64)
}
