package m365

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const csomApplicationName = "m365 CLI"

// CurrentSiteType is the CSOM type id of SP.ClientContext, used as the root
// of object paths through the Current static property.
const CurrentSiteType = "{3747adcd-a3c3-41b9-bfab-4a64dd2f1e0a}"

// CSOMRequest wraps actions and object paths into a ProcessQuery request body.
func CSOMRequest(actions, objectPaths string) string {
	return fmt.Sprintf(`<Request AddExpandoFieldTypeSuffix="true" SchemaVersion="15.0.0.0" LibraryVersion="16.0.0.0" ApplicationName="%s" xmlns="http://schemas.microsoft.com/sharepoint/clientquery/2009"><Actions>%s</Actions><ObjectPaths>%s</ObjectPaths></Request>`,
		csomApplicationName, actions, objectPaths)
}

// XMLEscape escapes s for use as CSOM parameter text or attribute value.
func XMLEscape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// ObjectIdentity returns the _ObjectIdentity_ of the last object in a CSOM
// response that carries one.
func ObjectIdentity(res []json.RawMessage) string {
	for i := len(res) - 1; i >= 0; i-- {
		if id := gjson.GetBytes(res[i], "_ObjectIdentity_").String(); id != "" {
			return id
		}
	}
	return ""
}
