package client

import "strings"

// Endpoints holds one URL per remote resource, plus the public base URL used
// to resolve relative image paths returned by the upload endpoint.
type Endpoints struct {
	Agenda         string
	Gallery        string
	Login          string
	Logout         string
	TokenCheck     string
	UpdatePassword string
	UploadImage    string
	Destination    string
	Category       string
	Article        string
	PublicURL      string
}

// EndpointsFromBase derives the default endpoint set for an API rooted at base,
// e.g. "https://api.example.id" -> "https://api.example.id/wisata.php".
func EndpointsFromBase(base, publicURL string) Endpoints {
	base = strings.TrimRight(base, "/")
	return Endpoints{
		Agenda:         base + "/agenda.php",
		Gallery:        base + "/gallery.php",
		Login:          base + "/login.php",
		Logout:         base + "/logout.php",
		TokenCheck:     base + "/check_token.php",
		UpdatePassword: base + "/update_password.php",
		UploadImage:    base + "/upload_image.php",
		Destination:    base + "/wisata.php",
		Category:       base + "/wisata_kategori.php",
		Article:        base + "/wisata_artikel.php",
		PublicURL:      strings.TrimRight(publicURL, "/") + "/",
	}
}

// resource identifies a remote collection for delete dispatch.
type resource int

const (
	resDestination resource = iota
	resArticle
	resAgenda
	resGallery
	resCategory
)

// deleteStyle is how a resource expects the identifier on DELETE.
type deleteStyle int

const (
	deleteByQuery deleteStyle = iota // ?id=<id>
	deleteByBody                     // {"id": <id>}
)

// deleteStyles records the remote API's per-endpoint DELETE convention. The API
// is not uniform and both shapes must be kept to stay compatible with it.
var deleteStyles = map[resource]deleteStyle{
	resDestination: deleteByQuery,
	resArticle:     deleteByQuery,
	resAgenda:      deleteByQuery,
	resGallery:     deleteByBody,
	resCategory:    deleteByQuery,
}

func (e Endpoints) url(r resource) string {
	switch r {
	case resDestination:
		return e.Destination
	case resArticle:
		return e.Article
	case resAgenda:
		return e.Agenda
	case resGallery:
		return e.Gallery
	case resCategory:
		return e.Category
	}
	return ""
}
