package credentials

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	legacyDomain  = "firebaseio.com"
	legacyRegion  = "us-central1"
	emailDomain   = "iam.gserviceaccount.com"
	rtdbSubdomain = "-default-rtdb"
)

var (
	// <project>-default-rtdb.<region>.firebasedatabase.app or the legacy
	// <project>-default-rtdb.firebaseio.com
	reDatabaseHost = regexp.MustCompile(
		`^([a-z0-9](?:[a-z0-9-]*[a-z0-9])?)` + regexp.QuoteMeta(rtdbSubdomain) +
			`\.(?:([a-z0-9](?:[a-z0-9-]*[a-z0-9])?)\.(firebasedatabase\.app)|(firebaseio\.com))$`)

	reEmailLocal = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)
)

// DatabaseURLFor returns the default database URL of projectID in region.
// Databases in us-central1 keep the firebaseio.com host.
func DatabaseURLFor(projectID, region string) string {
	if region == "" || region == legacyRegion {
		return "https://" + projectID + rtdbSubdomain + "." + legacyDomain + "/"
	}
	return "https://" + projectID + rtdbSubdomain + "." + region + ".firebasedatabase.app/"
}

// Load validates raw and returns an immutable snapshot. Checks run in a fixed
// order and the first failure is returned: presence, URL shape, project
// consistency, email shape, private key shape.
func Load(raw Raw) (*CredentialSet, error) {
	for _, f := range Fields() {
		if strings.TrimSpace(raw.Get(f)) == "" {
			return nil, newConfigError(MissingField, f, "value is empty")
		}
	}

	endpoint, err := parseDatabaseURL(raw.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if endpoint.project != raw.ProjectID {
		return nil, newConfigError(ProjectMismatch, FieldProjectID,
			"database URL names project %q, configured project is %q", endpoint.project, raw.ProjectID)
	}

	if err := checkClientEmail(raw.ClientEmail, raw.ProjectID); err != nil {
		return nil, err
	}

	emailPlaceholder := hasEmailPlaceholder(raw.ClientEmail)
	key, err := parsePrivateKey(raw.PrivateKeyPEM)
	if err != nil {
		return nil, err
	}

	kind := KindProduction
	if emailPlaceholder || key.placeholder {
		kind = KindTemplate
	}

	return &CredentialSet{
		id:          uuid.New(),
		kind:        kind,
		databaseURL: raw.DatabaseURL,
		projectID:   raw.ProjectID,
		clientEmail: raw.ClientEmail,
		region:      endpoint.region,
		domain:      endpoint.domain,
		fingerprint: key.fingerprint,
		privateKey:  key.pem,
	}, nil
}

// RequireProduction rejects template snapshots.
func RequireProduction(c *CredentialSet) (*CredentialSet, error) {
	if c == nil {
		return nil, newConfigError(MissingField, "", "no credentials loaded")
	}
	if c.kind != KindProduction {
		return nil, newConfigError(TemplateCredentialsUsed, "",
			"credentials for project %q contain placeholder values", c.projectID)
	}
	return c, nil
}

type databaseEndpoint struct {
	project, region, domain string
}

func parseDatabaseURL(raw string) (*databaseEndpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, newConfigError(MalformedURL, FieldDatabaseURL, "not a URL")
	}
	switch {
	case u.Scheme != "https":
		return nil, newConfigError(MalformedURL, FieldDatabaseURL, "scheme must be https, got %q", u.Scheme)
	case u.User != nil:
		return nil, newConfigError(MalformedURL, FieldDatabaseURL, "must not carry user info")
	case u.Port() != "":
		return nil, newConfigError(MalformedURL, FieldDatabaseURL, "must not carry a port")
	case u.Path != "" && u.Path != "/":
		return nil, newConfigError(MalformedURL, FieldDatabaseURL, "unexpected path %q", u.Path)
	case u.RawQuery != "" || u.Fragment != "":
		return nil, newConfigError(MalformedURL, FieldDatabaseURL, "must not carry a query or fragment")
	}

	m := reDatabaseHost.FindStringSubmatch(u.Hostname())
	if m == nil {
		return nil, newConfigError(MalformedURL, FieldDatabaseURL,
			"host %q is not of the form <project>%s.<region>.<domain>", u.Hostname(), rtdbSubdomain)
	}

	endpoint := &databaseEndpoint{project: m[1], region: m[2], domain: m[3]}
	if m[4] != "" {
		endpoint.region, endpoint.domain = legacyRegion, legacyDomain
	}
	return endpoint, nil
}

func checkClientEmail(email, projectID string) error {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return newConfigError(MalformedEmail, FieldClientEmail, "missing '@'")
	}
	// placeholder account names are classified later rather than rejected
	if !reEmailLocal.MatchString(local) && !hasEmailPlaceholder(local) {
		return newConfigError(MalformedEmail, FieldClientEmail, "invalid account name %q", local)
	}
	if want := projectID + "." + emailDomain; domain != want {
		return newConfigError(MalformedEmail, FieldClientEmail, "domain %q, expected %q", domain, want)
	}
	return nil
}
