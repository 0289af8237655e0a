package server

import (
	"html/template"
	"log"
	"net/http"
)

const appName = "TikTok Content Commander"

var pageLayout = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} | {{.App}}</title>
<style>
body { background: #000; color: #fff; font-family: sans-serif; max-width: 720px; margin: 40px auto; padding: 0 16px; }
h1 { color: #25F4EE; }
code { background: #121212; color: #FE2C55; padding: 8px 12px; display: block; word-break: break-all; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}{{if .Code}}<code>{{.Code}}</code>
<p>Copy this code and paste it into the account linking form.</p>
{{end}}{{if .Error}}<p>Authorization failed: {{.Error}}</p>
{{end}}</body>
</html>
`))

type page struct {
	App        string
	Title      string
	Paragraphs []string
	Code       string
	Error      string
}

func renderPage(w http.ResponseWriter, p page) {
	p.App = appName
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageLayout.Execute(w, p); err != nil {
		log.Printf("❌ Error rendering page: %v", err)
	}
}

// handleAuthCallback is the OAuth redirect target; it shows the code for copy-paste
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := page{Title: "TikTok Authorization"}

	switch {
	case q.Get("code") != "":
		p.Paragraphs = []string{"Authorization succeeded."}
		p.Code = q.Get("code")
	case q.Get("error") != "":
		p.Error = q.Get("error_description")
		if p.Error == "" {
			p.Error = q.Get("error")
		}
	default:
		p.Paragraphs = []string{"No authorization code was found in this URL."}
	}

	renderPage(w, p)
}

func (s *Server) handlePrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	renderPage(w, page{
		Title: "Privacy Policy",
		Paragraphs: []string{
			appName + " stores linked account names, access tokens and scheduled posts on the machine it runs on.",
			"Video files are held only while an upload is in progress and are deleted afterwards.",
			"Topics, scripts and prompts are sent to Google Gemini to generate content. Videos and captions are sent to TikTok only when you publish.",
			"Nothing is shared with third parties beyond those two services.",
		},
	})
}

func (s *Server) handleTermsOfService(w http.ResponseWriter, r *http.Request) {
	renderPage(w, page{
		Title: "Terms of Service",
		Paragraphs: []string{
			"By using " + appName + " you agree to comply with the TikTok Terms of Service and Community Guidelines for everything you publish.",
			"You are responsible for the content you generate, edit and upload, and for keeping your access tokens secure.",
			"The service is provided as is, without warranty. Simulated uploads and scheduled posts are not published to TikTok.",
		},
	})
}
