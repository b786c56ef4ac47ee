package netsvr

import (
	"net/http"

	"github.com/zintix-labs/lottolab/server/app"
)

// NetSvr 路由 + 服務啟停，只交給最外層組裝使用。
// 同時實作 app.Component，可直接交給 app.App 管理。
type NetSvr interface {
	NetRouter
	app.Component
	Handler() http.Handler
}

// NetRouter 純路由行為；handler 子模組只拿得到這一層，碰不到 Run/Shutdown。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
