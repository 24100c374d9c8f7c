package qti

import "encoding/xml"

// Namespaces and resource types of the package documents.
const (
	manifestNS    = "http://www.imsglobal.org/xsd/imsccv1p1/imscp_v1p1"
	qtiNS         = "http://www.imsglobal.org/xsd/ims_qtiasiv1p2"
	quizMetaNS    = "http://canvas.instructure.com/xsd/cccv1p0"
	resourceQTI   = "imsqti_xmlv1p2"
	resourceMeta  = "associatedcontent/imscc_xmlv1p1/learning-application-resource"
	resourceWeb   = "webcontent"
	manifestName  = "imsmanifest.xml"
	metaName      = "assessment_meta.xml"
	imagesDir     = "images"
	fileBase      = "$IMS-CC-FILEBASE$"
	responseIdent = "response1"
	fullScore     = "100"
)

// ---------------------------------------------------------------------------
// imsmanifest.xml
// ---------------------------------------------------------------------------

type manifest struct {
	XMLName    xml.Name   `xml:"manifest"`
	Xmlns      string     `xml:"xmlns,attr,omitempty"`
	Identifier string     `xml:"identifier,attr"`
	Metadata   metadata   `xml:"metadata"`
	Resources  []resource `xml:"resources>resource"`
}

type metadata struct {
	Schema        string `xml:"schema"`
	SchemaVersion string `xml:"schemaversion"`
}

type resource struct {
	Identifier   string       `xml:"identifier,attr"`
	Type         string       `xml:"type,attr"`
	Href         string       `xml:"href,attr,omitempty"`
	Files        []file       `xml:"file"`
	Dependencies []dependency `xml:"dependency"`
}

type file struct {
	Href string `xml:"href,attr"`
}

type dependency struct {
	IdentifierRef string `xml:"identifierref,attr"`
}

// ---------------------------------------------------------------------------
// <id>/assessment_meta.xml
// ---------------------------------------------------------------------------

type quizMeta struct {
	XMLName        xml.Name `xml:"quiz"`
	Xmlns          string   `xml:"xmlns,attr,omitempty"`
	Identifier     string   `xml:"identifier,attr"`
	Title          string   `xml:"title"`
	Description    string   `xml:"description"`
	ShuffleAnswers bool     `xml:"shuffle_answers"`
	QuizType       string   `xml:"quiz_type"`
	PointsPossible string   `xml:"points_possible"`
	AllowedAttempt int      `xml:"allowed_attempts"`
}

// ---------------------------------------------------------------------------
// <id>/<id>.xml
// ---------------------------------------------------------------------------

type questestinterop struct {
	XMLName    xml.Name   `xml:"questestinterop"`
	Xmlns      string     `xml:"xmlns,attr,omitempty"`
	Assessment assessment `xml:"assessment"`
}

type assessment struct {
	Ident    string      `xml:"ident,attr"`
	Title    string      `xml:"title,attr"`
	Metadata []metaField `xml:"qtimetadata>qtimetadatafield"`
	Section  section     `xml:"section"`
}

type section struct {
	Ident string `xml:"ident,attr"`
	Items []item `xml:"item"`
}

type item struct {
	Ident         string        `xml:"ident,attr"`
	Title         string        `xml:"title,attr"`
	Metadata      []metaField   `xml:"itemmetadata>qtimetadata>qtimetadatafield"`
	Presentation  presentation  `xml:"presentation"`
	Resprocessing resprocessing `xml:"resprocessing"`
}

type metaField struct {
	Label string `xml:"fieldlabel"`
	Entry string `xml:"fieldentry"`
}

type presentation struct {
	Material    material     `xml:"material"`
	ResponseLid *responseLid `xml:"response_lid,omitempty"`
	ResponseStr *responseStr `xml:"response_str,omitempty"`
}

type material struct {
	Text mattext `xml:"mattext"`
}

type mattext struct {
	Type string `xml:"texttype,attr"`
	Body string `xml:",chardata"`
}

type responseLid struct {
	Ident       string       `xml:"ident,attr"`
	Cardinality string       `xml:"rcardinality,attr"`
	Render      renderChoice `xml:"render_choice"`
}

type renderChoice struct {
	Shuffle string          `xml:"shuffle,attr,omitempty"`
	Labels  []responseLabel `xml:"response_label"`
}

type responseLabel struct {
	Ident    string   `xml:"ident,attr"`
	Shuffle  string   `xml:"rshuffle,attr,omitempty"`
	Material material `xml:"material"`
}

type responseStr struct {
	Ident       string    `xml:"ident,attr"`
	Cardinality string    `xml:"rcardinality,attr"`
	Render      renderFib `xml:"render_fib"`
}

type renderFib struct {
	Label responseLabelEmpty `xml:"response_label"`
}

type responseLabelEmpty struct {
	Ident   string `xml:"ident,attr"`
	Shuffle string `xml:"rshuffle,attr,omitempty"`
}

type resprocessing struct {
	Outcomes   outcomes        `xml:"outcomes"`
	Conditions []respcondition `xml:"respcondition"`
}

type outcomes struct {
	Decvar decvar `xml:"decvar"`
}

type decvar struct {
	MaxValue string `xml:"maxvalue,attr"`
	MinValue string `xml:"minvalue,attr"`
	VarName  string `xml:"varname,attr"`
	VarType  string `xml:"vartype,attr"`
}

type respcondition struct {
	Continue     string       `xml:"continue,attr"`
	ConditionVar conditionVar `xml:"conditionvar"`
	SetVar       *setvar      `xml:"setvar,omitempty"`
}

type conditionVar struct {
	VarEqual []varequal `xml:"varequal"`
	And      *andCond   `xml:"and,omitempty"`
	Other    *struct{}  `xml:"other,omitempty"`
}

type andCond struct {
	VarEqual []varequal `xml:"varequal"`
	Not      []notCond  `xml:"not"`
}

type notCond struct {
	VarEqual []varequal `xml:"varequal"`
}

type varequal struct {
	RespIdent string `xml:"respident,attr"`
	Value     string `xml:",chardata"`
}

type setvar struct {
	Action  string `xml:"action,attr"`
	VarName string `xml:"varname,attr"`
	Value   string `xml:",chardata"`
}

// field returns the entry of the metadata field with label.
func field(fields []metaField, label string) string {
	for _, f := range fields {
		if f.Label == label {
			return f.Entry
		}
	}
	return ""
}
