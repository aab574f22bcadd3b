package script

// prelude is evaluated into every new Runtime.
const prelude = `
(defmacro or (& xs)
  (if (empty? xs)
    false
    (if (empty? (rest xs))
      (first xs)
      (let ((v (gensym)))
        ` + "`" + `(let ((,v ,(first xs))) (if ,v ,v (or ,@(rest xs))))))))

(defmacro and (& xs)
  (if (empty? xs)
    true
    (if (empty? (rest xs))
      (first xs)
      ` + "`" + `(if ,(first xs) (and ,@(rest xs)) false))))

(defmacro with_cache (key & body)
  ` + "`" + `(cache_get_or __rt_cache ,key (fn () ,@body)))
`
