package proxy

import (
	"bytes"
	"fmt"
	"text/template"
)

// siteTemplate is the per-domain nginx site. Streaming sessions are
// long-lived and bursty, so timeouts are generous and buffering is off:
// the proxy must not stall time-sensitive stream data in memory.
var siteTemplate = template.Must(template.New("site").Parse(`server {
    listen 80;
    listen [::]:80;
    server_name {{ .Domain }};

    location / {
        proxy_pass http://{{ .Upstream }};
        proxy_http_version 1.1;

        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;

        proxy_connect_timeout 300s;
        proxy_send_timeout 300s;
        proxy_read_timeout 300s;

        proxy_buffering off;
        proxy_request_buffering off;
        client_max_body_size 100M;
    }
}
`))

// RenderSite produces the site configuration binding the public domain to
// the loopback upstream.
func RenderSite(domain, upstream string) ([]byte, error) {
	var buf bytes.Buffer
	err := siteTemplate.Execute(&buf, struct {
		Domain   string
		Upstream string
	}{Domain: domain, Upstream: upstream})
	if err != nil {
		return nil, fmt.Errorf("render site config: %w", err)
	}
	return buf.Bytes(), nil
}
