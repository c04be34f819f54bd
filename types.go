package folio

// chatRequest is the body of POST /chat/.
type chatRequest struct {
	Query string `json:"query"`
}

// chatResponse carries the bot reply, or the apology on failure.
type chatResponse struct {
	Response string `json:"response"`
}

// BuildReport summarizes a static export.
type BuildReport struct {
	Pages           []string
	Posts           int
	Assets          int
	ImagesOptimized int
}
