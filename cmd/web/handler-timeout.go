package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<html lang="ru">
<head><title>Timeout</title></head>
<body>
<h1>Timeout</h1>
<div>
    <button type="button">
        <span>Retry</span>
        <script>
          document.currentScript.parentElement.addEventListener('click', function () {
            location.reload();
          });
        </script>
    </button>
</div>
</body>
</html>
`

// timeout responds with a 503 Service Unavailable error when the handler does not meet the deadline.
func (app *application) timeout(h http.Handler) http.Handler {
	return timeoutHandler(h, defaultTimeout)
}

func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	// The handler timeout is a little shorter than the server's write timeout so that the handler has a chance to
	// respond before the server closes the connection.
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	return http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
}
