package user

import (
	"net/http"

	midsec "RoomChat/middleware/security"
	"RoomChat/module/user/service"
	"RoomChat/tools/errs"

	"github.com/gin-gonic/gin"
)

var svc *service.Service

// Init wires the credential service into the package handlers; call once
// from main before registering routes.
func Init(s *service.Service) { svc = s }

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandlerLogin validates credentials and returns a connection token.
func HandlerLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, errs.ErrBadCredentials.WithDetail("username and password are required"))
		return
	}

	role, ok := svc.ValidateCredentials(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, errs.ErrBadCredentials)
		return
	}

	token, expireAt, err := svc.IssueToken(req.Username, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errs.ErrBadCredentials.WithDetail("token issue failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": req.Username,
		"role":     role,
		"expireAt": expireAt.Unix(),
	})
}

// HandlerCheck verifies the bearer token extracted by the auth middleware
// and echoes the identity it carries.
func HandlerCheck(c *gin.Context) {
	token := c.GetString(midsec.CtxAuthKey)
	claims, err := svc.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errs.ErrTokenInvalid)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username": claims.Username,
		"role":     claims.Role,
	})
}
