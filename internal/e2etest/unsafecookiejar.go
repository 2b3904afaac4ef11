package e2etest

import (
	"github.com/myrjola/constellation/internal/errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// insecureJar keeps Secure cookies over plain HTTP. The CSRF cookie is Secure and the test server speaks HTTP.
type insecureJar struct {
	*cookiejar.Jar
}

func newUnsafeCookieJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return insecureJar{Jar: jar}, nil
}

func (j insecureJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	relaxed := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		cp := *c
		cp.Secure = false
		relaxed = append(relaxed, &cp)
	}
	j.Jar.SetCookies(u, relaxed)
}
