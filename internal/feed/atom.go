package feed

import "encoding/xml"

// Namespace is the Atom 1.0 XML namespace.
const Namespace = "http://www.w3.org/2005/Atom"

// Feed is an Atom feed document.
type Feed struct {
	XMLName   xml.Name  `xml:"feed"`
	Namespace string    `xml:"xmlns,attr"`
	Lang      string    `xml:"xml:lang,attr,omitempty"`
	Title     string    `xml:"title"`
	Subtitle  *Text     `xml:"subtitle,omitempty"`
	ID        string    `xml:"id"`
	Updated   string    `xml:"updated,omitempty"`
	Links     []Link    `xml:"link"`
	Author    *Person   `xml:"author,omitempty"`
	Generator Generator `xml:"generator"`
	Entries   []Entry   `xml:"entry"`
}

// Entry is one feed entry.
type Entry struct {
	Title     string  `xml:"title"`
	ID        string  `xml:"id"`
	Published string  `xml:"published"`
	Updated   string  `xml:"updated"`
	Author    *Person `xml:"author,omitempty"`
	Link      Link    `xml:"link"`
	Content   Content `xml:"content"`
}

// Text is a plain text construct.
type Text struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Link is an Atom link.
type Link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

// Person is an author.
type Person struct {
	Name string `xml:"name"`
	URI  string `xml:"uri,omitempty"`
}

// Generator names the software that produced the feed.
type Generator struct {
	URI     string `xml:"uri,attr,omitempty"`
	Version string `xml:"version,attr,omitempty"`
	Name    string `xml:",chardata"`
}

// Content is an entry body. Value holds escaped HTML when Type is "html".
type Content struct {
	Type  string `xml:"type,attr"`
	Lang  string `xml:"xml:lang,attr,omitempty"`
	Value string `xml:",chardata"`
}
