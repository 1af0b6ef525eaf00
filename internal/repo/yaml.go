package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/circlehub/internal/domain"
)

// yamlFile is the document layout of a club directory file.
type yamlFile struct {
	Clubs []yamlClub `yaml:"clubs"`
}

type yamlClub struct {
	Key               string          `yaml:"key"`
	Name              string          `yaml:"name"`
	Verified          bool            `yaml:"verified"`
	ProfileImage      string          `yaml:"profile_image"`
	Affiliation       string          `yaml:"affiliation"`
	Tags              []string        `yaml:"tags"`
	Activity          yamlActivity    `yaml:"activity"`
	Members           yamlMembers     `yaml:"members"`
	Links             yamlLinks       `yaml:"links"`
	Recruitment       yamlRecruitment `yaml:"recruitment"`
	LastUpdate        string          `yaml:"last_update"`
	SecretDescription string          `yaml:"secret_description"`
}

type yamlActivity struct {
	Summary         string `yaml:"summary"`
	Location        string `yaml:"location"`
	Frequency       string `yaml:"frequency"`
	Fee             string `yaml:"fee"`
	Record          string `yaml:"record"`
	Meal            string `yaml:"meal"`
	MembershipFee   string `yaml:"membership_fee"`
	InitialCost     string `yaml:"initial_cost"`
	FeelingPositive string `yaml:"feeling_positive"`
	FeelingNegative string `yaml:"feeling_negative"`
}

type yamlMembers struct {
	TotalMembers string            `yaml:"total_members"`
	GradeLevels  map[string]string `yaml:"grade_levels"`
	Male         string            `yaml:"male"`
	Female       string            `yaml:"female"`
	Belonging    map[string]string `yaml:"belonging"`
	FoundingYear string            `yaml:"founding_year"`
}

type yamlLinks struct {
	Instagram string `yaml:"instagram"`
	LINE      string `yaml:"line"`
	X         string `yaml:"x"`
	Website   string `yaml:"website"`
	Facebook  string `yaml:"facebook"`
	YouTube   string `yaml:"youtube"`
}

// yamlRecruitment accepts either a plain string or a mapping.
type yamlRecruitment struct {
	Text            string `yaml:"text"`
	WelcomeSchedule string `yaml:"welcome_schedule"`
}

func (r *yamlRecruitment) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Text = value.Value
		return nil
	}
	type plain yamlRecruitment
	return value.Decode((*plain)(r))
}

func (c yamlClub) toDomain() domain.Club {
	return domain.Club{
		Key:          c.Key,
		Name:         c.Name,
		Verified:     c.Verified,
		ProfileImage: c.ProfileImage,
		Affiliation:  c.Affiliation,
		Tags:         c.Tags,
		Activity:     domain.ActivityDetails(c.Activity),
		Members:      domain.MemberComposition(c.Members),
		Links:        domain.ExternalLinks(c.Links),
		Recruitment: domain.RecruitmentInfo{
			Text:            c.Recruitment.Text,
			WelcomeSchedule: c.Recruitment.WelcomeSchedule,
		},
		LastUpdate:        c.LastUpdate,
		SecretDescription: c.SecretDescription,
	}
}

// DecodeYAML reads a club directory document from r. Unknown fields are
// rejected so typos in hand-edited files surface as errors.
func DecodeYAML(r io.Reader) ([]domain.Club, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Club{}, nil
		}
		return nil, fmt.Errorf("repo.DecodeYAML: %w", err)
	}

	clubs := make([]domain.Club, len(doc.Clubs))
	for i, c := range doc.Clubs {
		clubs[i] = c.toDomain()
	}
	return clubs, nil
}

// yamlClubRepo reads clubs from a YAML document inside an fs.FS.
type yamlClubRepo struct {
	fsys fs.FS
	name string
}

// NewYAMLClubRepo returns a ClubRepo reading name from fsys on every List.
// Pass seed.FS for the built-in directory or os.DirFS for a file on disk.
func NewYAMLClubRepo(fsys fs.FS, name string) ClubRepo {
	return &yamlClubRepo{fsys: fsys, name: name}
}

func (r *yamlClubRepo) List(ctx context.Context) ([]domain.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.YAMLClubRepo.List: %w", err)
	}

	f, err := r.fsys.Open(r.name)
	if err != nil {
		return nil, fmt.Errorf("repo.YAMLClubRepo.List: %w", err)
	}
	defer f.Close()

	clubs, err := DecodeYAML(f)
	if err != nil {
		return nil, fmt.Errorf("repo.YAMLClubRepo.List: %s: %w", r.name, err)
	}
	return clubs, nil
}
