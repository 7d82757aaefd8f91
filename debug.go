package fritzbox

import (
	"log"
	"net/http"
	"net/http/httputil"
)

type debugging bool

func (debug debugging) Printf(format string, args ...interface{}) {
	if debug {
		log.Printf(format, args...)
	}
}

func (debug debugging) dumpRequest(req *http.Request) {
	if !debug {
		return
	}
	dump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		debug.Printf("dump request: %v", err)
		return
	}
	debug.Printf("request:\n%s", dump)
}

func (debug debugging) dumpResponse(resp *http.Response) {
	if !debug {
		return
	}
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		debug.Printf("dump response: %v", err)
		return
	}
	debug.Printf("response:\n%s", dump)
}
