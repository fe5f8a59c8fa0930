package internal

import (
	"fmt"
	"os"
	"os/user"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
	log "github.com/sirupsen/logrus"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func ShowVersion() {
	log.WithFields(log.Fields{
		"revision": versioninfo.Revision,
		"dirty":    versioninfo.DirtyBuild,
	}).Printf("Version: %s", versioninfo.Short())
}

// MaskedEnvironment returns environ sorted by key, with the values of
// anything that looks like a credential replaced by asterisks.
func MaskedEnvironment(environ []string) []string {
	out := make([]string, 0, len(environ))
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if sensitiveRegex.MatchString(key) {
			value = "********"
		}
		out = append(out, key+"="+value)
	}
	slices.SortFunc(out, func(a, b string) int {
		ka, _, _ := strings.Cut(a, "=")
		kb, _, _ := strings.Cut(b, "=")
		return strings.Compare(ka, kb)
	})
	return out
}

func EnvironmentVars() {
	log.Debug("Environment variables")
	for _, entry := range MaskedEnvironment(os.Environ()) {
		key, value, _ := strings.Cut(entry, "=")
		log.Debugf("  %s: %s", key, value)
	}
}

func UserInfo() {
	fields := log.Fields{"pid": os.Getpid()}

	if currentUser, err := user.Current(); err != nil {
		log.Printf("Error getting current user: %v", err)
	} else {
		fields["user"] = fmt.Sprintf("uid=%s(%s) gid=%s", currentUser.Uid, currentUser.Username, currentUser.Gid)
	}

	if groups, err := os.Getgroups(); err != nil {
		log.Printf("Error getting groups: %v", err)
	} else {
		groupNames := make([]string, 0, len(groups))
		for _, gid := range groups {
			group, err := user.LookupGroupId(strconv.Itoa(gid))
			if err != nil {
				groupNames = append(groupNames, strconv.Itoa(gid)) // Append ID if name lookup fails
			} else {
				groupNames = append(groupNames, fmt.Sprintf("%s(%s)", group.Name, group.Gid))
			}
		}
		fields["groups"] = groupNames
	}

	log.WithFields(fields).Info("Process info")
}
