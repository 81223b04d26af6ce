package hrg

import (
	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// NodeFactory chooses the variant of a node created in relation label. The
// variant decides which typed view (Token, Word, ...) the node accepts.
type NodeFactory func(label schema.Relation) (schema.Relation, error)

// RelationFactory builds the relation instance stored under label. It must
// return a relation built with NewRelation for g and label.
type RelationFactory func(g *Graph, label schema.Relation) (*Relation, error)

// RelationValidator reports whether parent may parent child.
type RelationValidator func(parent, child schema.Relation) bool

// RelationNameMapper translates between relation labels and the names used
// in text.
type RelationNameMapper interface {
	RelationName(r schema.Relation) string
	ParseRelation(name string) (schema.Relation, error)
}

type policies struct {
	nodeFactory     NodeFactory
	relationFactory RelationFactory
	validator       RelationValidator
	relationNames   RelationNameMapper
	featureNames    feature.NameMapper
}

// Option configures a Graph.
type Option func(*policies)

func WithNodeFactory(f NodeFactory) Option {
	return func(p *policies) {
		if f != nil {
			p.nodeFactory = f
		}
	}
}

func WithRelationFactory(f RelationFactory) Option {
	return func(p *policies) {
		if f != nil {
			p.relationFactory = f
		}
	}
}

func WithRelationValidator(v RelationValidator) Option {
	return func(p *policies) {
		if v != nil {
			p.validator = v
		}
	}
}

func WithRelationNameMapper(m RelationNameMapper) Option {
	return func(p *policies) {
		if m != nil {
			p.relationNames = m
		}
	}
}

func WithFeatureNameMapper(m feature.NameMapper) Option {
	return func(p *policies) {
		if m != nil {
			p.featureNames = m
		}
	}
}

func defaultPolicies() policies {
	return policies{
		nodeFactory:     DefaultNodeFactory,
		relationFactory: DefaultRelationFactory,
		validator:       schema.AllowsLink,
		relationNames:   DefaultRelationNames,
		featureNames:    feature.DefaultMapper,
	}
}

// DefaultNodeFactory gives every registered label its own variant.
func DefaultNodeFactory(label schema.Relation) (schema.Relation, error) {
	if !label.Valid() {
		return schema.InvalidRelation, hrgerr.New(hrgerr.BadRelation, "no node type for %s", label)
	}
	return label, nil
}

// DefaultRelationFactory builds a relation for every registered label,
// open or closed as the registry declares.
func DefaultRelationFactory(g *Graph, label schema.Relation) (*Relation, error) {
	if !label.Valid() {
		return nil, hrgerr.New(hrgerr.BadRelation, "no relation type for %s", label)
	}
	return NewRelation(g, label, label.Open()), nil
}

type registryRelationNames struct{}

func (registryRelationNames) RelationName(r schema.Relation) string {
	return r.String()
}

func (registryRelationNames) ParseRelation(name string) (schema.Relation, error) {
	return schema.ParseRelation(name)
}

// DefaultRelationNames maps names through the relation registry.
var DefaultRelationNames RelationNameMapper = registryRelationNames{}
